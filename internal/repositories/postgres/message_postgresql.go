package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

type messagePostgreSQL struct {
	db *gorm.DB
}

// NewMessagePostgreSQL creates the GORM-backed chat log repository.
func NewMessagePostgreSQL(db *gorm.DB) repositories.MessageRepository {
	return &messagePostgreSQL{db: db}
}

func (r *messagePostgreSQL) Create(ctx context.Context, msg *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messagePostgreSQL) ListBetween(ctx context.Context, userA, userB string) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").Order("seq ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

type announcementPostgreSQL struct {
	db *gorm.DB
}

// NewAnnouncementPostgreSQL creates the GORM-backed announcement repository.
func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &announcementPostgreSQL{db: db}
}

func (r *announcementPostgreSQL) Create(ctx context.Context, ann *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(ann).Error; err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementPostgreSQL) ListByProfessor(ctx context.Context, professorID string) ([]*models.Announcement, error) {
	var anns []*models.Announcement
	if err := r.db.WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("created_at DESC").
		Find(&anns).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return anns, nil
}
