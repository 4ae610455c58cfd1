package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/validator"
)

type identityService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewIdentityService creates the identity service.
func NewIdentityService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher) IdentityService {
	return &identityService{
		repo:      repo,
		validator: v,
		publisher: publisher,
	}
}

func (s *identityService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	language := req.Language
	if language == "" {
		language = models.LanguageArabic
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		Role:         req.Role,
		University:   req.University,
		Faculty:      req.Faculty,
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		Language:     language,
		PasswordHash: hashPassword(req.Password),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	}))

	return user, nil
}

func (s *identityService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if user.PasswordHash != hashPassword(req.Password) {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

func (s *identityService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// UpdateUser merges the provided profile fields into the existing record.
// Role and id never change after registration.
func (s *identityService) UpdateUser(ctx context.Context, id string, req *validator.UpdateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			exists, err := s.repo.User().ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("checking email: %w", err)
			}
			if exists {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.University != nil {
		user.University = req.University
	}
	if req.Faculty != nil {
		user.Faculty = req.Faculty
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *identityService) ListProfessors(ctx context.Context) ([]*models.User, error) {
	professors, err := s.repo.User().ListProfessors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing professors: %w", err)
	}
	return professors, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
