package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/validator"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.services.Identity.Register(ctx, &validator.RegisterRequest{
		Name:     "Lina B",
		Email:    "Lina@Univ.DZ",
		Password: "secret123",
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("user id should be assigned")
	}
	if user.Email != "lina@univ.dz" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Language != models.LanguageArabic {
		t.Errorf("language = %q, want default ar", user.Language)
	}
	if user.Stars != 0 {
		t.Errorf("stars = %v, want 0 at registration", user.Stars)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.services.Identity.Register(ctx, &validator.RegisterRequest{
			Name:     "Other",
			Email:    "lina@univ.dz",
			Password: "secret123",
			Role:     models.RoleProfessor,
		})
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := env.services.Identity.Register(ctx, &validator.RegisterRequest{
			Name:     "Admin",
			Email:    "admin@univ.dz",
			Password: "secret123",
			Role:     "admin",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("expected validation errors, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered := env.registerStudent(t, "student-lina")

	user, err := env.services.Identity.Login(ctx, &validator.LoginRequest{
		Email:    registered.Email,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged in as %s, want %s", user.ID, registered.ID)
	}

	if _, err := env.services.Identity.Login(ctx, &validator.LoginRequest{
		Email:    registered.Email,
		Password: "wrong",
	}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for wrong password, got %v", err)
	}

	if _, err := env.services.Identity.Login(ctx, &validator.LoginRequest{
		Email:    "unknown@univ.dz",
		Password: "secret123",
	}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for unknown email, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerStudent(t, "student-lina")
	other := env.registerStudent(t, "student-sami")

	newName := "Lina Benali"
	language := models.LanguageFrench
	updated, err := env.services.Identity.UpdateUser(ctx, user.ID, &validator.UpdateUserRequest{
		Name:     &newName,
		Language: &language,
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("name = %q, want %q", updated.Name, newName)
	}
	if updated.Language != models.LanguageFrench {
		t.Errorf("language = %q, want fr", updated.Language)
	}
	if updated.Role != models.RoleStudent {
		t.Errorf("role = %q, must never change", updated.Role)
	}

	t.Run("email change to taken address", func(t *testing.T) {
		if _, err := env.services.Identity.UpdateUser(ctx, user.ID, &validator.UpdateUserRequest{
			Email: &other.Email,
		}); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := env.services.Identity.UpdateUser(ctx, "missing", &validator.UpdateUserRequest{}); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestListProfessors(t *testing.T) {
	env := newTestEnv(t)

	env.registerProfessor(t, "prof-amine")
	env.registerProfessor(t, "prof-yacine")
	env.registerStudent(t, "student-lina")

	professors, err := env.services.Identity.ListProfessors(context.Background())
	if err != nil {
		t.Fatalf("ListProfessors failed: %v", err)
	}
	if len(professors) != 2 {
		t.Fatalf("listed %d professors, want 2", len(professors))
	}
	for _, p := range professors {
		if !p.IsProfessor() {
			t.Errorf("non-professor %s in catalog", p.ID)
		}
	}
}
