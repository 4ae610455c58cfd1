package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

type subscriptionPostgreSQL struct {
	db *gorm.DB
}

// NewSubscriptionPostgreSQL creates the GORM-backed subscription repository.
func NewSubscriptionPostgreSQL(db *gorm.DB) repositories.SubscriptionRepository {
	return &subscriptionPostgreSQL{db: db}
}

func (r *subscriptionPostgreSQL) Create(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionPostgreSQL) Delete(ctx context.Context, studentID, channelID string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Subscription{}, "student_id = ? AND channel_id = ?", studentID, channelID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *subscriptionPostgreSQL) Exists(ctx context.Context, studentID, channelID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("student_id = ? AND channel_id = ?", studentID, channelID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

func (r *subscriptionPostgreSQL) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *subscriptionPostgreSQL) ListByStudent(ctx context.Context, studentID string) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (r *subscriptionPostgreSQL) DeleteByChannel(ctx context.Context, channelID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Subscription{}, "channel_id = ?", channelID)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cascade subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type followPostgreSQL struct {
	db *gorm.DB
}

// NewFollowPostgreSQL creates the GORM-backed follow repository.
func NewFollowPostgreSQL(db *gorm.DB) repositories.FollowRepository {
	return &followPostgreSQL{db: db}
}

func (r *followPostgreSQL) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (r *followPostgreSQL) Delete(ctx context.Context, studentID, professorID string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Follow{}, "student_id = ? AND professor_id = ?", studentID, professorID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *followPostgreSQL) Exists(ctx context.Context, studentID, professorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("student_id = ? AND professor_id = ?", studentID, professorID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

func (r *followPostgreSQL) ListByStudent(ctx context.Context, studentID string) ([]*models.Follow, error) {
	var follows []*models.Follow
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	return follows, nil
}
