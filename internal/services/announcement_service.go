package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/validator"
)

type announcementService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewAnnouncementService creates the announcement service.
func NewAnnouncementService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher) AnnouncementService {
	return &announcementService{
		repo:      repo,
		validator: v,
		publisher: publisher,
	}
}

func (s *announcementService) Publish(ctx context.Context, professorID string, req *validator.PublishAnnouncementRequest) (*models.Announcement, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	professor, err := s.repo.User().GetByID(ctx, professorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching professor: %w", err)
	}
	if !professor.IsProfessor() {
		return nil, ErrNotProfessor
	}

	ann := &models.Announcement{
		ID:          uuid.New().String(),
		ProfessorID: professorID,
		Title:       req.Title,
		Body:        req.Body,
	}

	if err := s.repo.Announcement().Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("creating announcement: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventAnnouncementPosted, map[string]any{
		"announcement_id": ann.ID,
		"professor_id":    professorID,
	}))

	return ann, nil
}

func (s *announcementService) ListByProfessor(ctx context.Context, professorID string) ([]*models.Announcement, error) {
	ok, err := s.repo.User().ExistsByID(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("checking professor: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	announcements, err := s.repo.Announcement().ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	return announcements, nil
}
