package repositories

import (
	"context"

	"github.com/edudz/platform-service/internal/models"
)

// MessageRepository owns the append-only chat log.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error

	// ListBetween returns every message exchanged between the two users in
	// either direction, ordered by timestamp ascending with insertion
	// order breaking ties. Symmetric in its arguments.
	ListBetween(ctx context.Context, userA, userB string) ([]*models.ChatMessage, error)
}

// AnnouncementRepository owns professor broadcast posts.
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *models.Announcement) error

	// ListByProfessor returns the professor's announcements newest first.
	ListByProfessor(ctx context.Context, professorID string) ([]*models.Announcement, error)
}
