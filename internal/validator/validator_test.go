package validator

import (
	"testing"

	"github.com/edudz/platform-service/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		errs := v.Validate(&RegisterRequest{
			Name:     "Lina Benali",
			Email:    "lina@univ.dz",
			Password: "secret123",
			Role:     models.RoleStudent,
		})
		if errs != nil {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("collects all field errors", func(t *testing.T) {
		errs := v.Validate(&RegisterRequest{
			Name:     "L",
			Email:    "not-an-email",
			Password: "x",
			Role:     "admin",
		})
		if len(errs) != 4 {
			t.Errorf("got %d errors, want 4: %v", len(errs), errs)
		}
	})

	t.Run("language restricted to ar and fr", func(t *testing.T) {
		errs := v.Validate(&RegisterRequest{
			Name:     "Lina Benali",
			Email:    "lina@univ.dz",
			Password: "secret123",
			Role:     models.RoleStudent,
			Language: "en",
		})
		if len(errs) != 1 || errs[0].Field != "Language" {
			t.Errorf("expected a single Language error, got %v", errs)
		}
	})
}

func TestValidateAddContentRequest(t *testing.T) {
	v := New()

	errs := v.Validate(&AddContentRequest{
		Type:  "podcast",
		Title: "Episode 1",
		URL:   "https://cdn.univ.dz/ep1.mp3",
	})
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Rule != "oneof" {
		t.Errorf("rule = %q, want oneof", errs[0].Rule)
	}
}
