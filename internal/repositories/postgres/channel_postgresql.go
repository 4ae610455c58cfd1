package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edudz/platform-service/internal/cache"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

type channelPostgreSQL struct {
	db           *gorm.DB
	channelCache *cache.CacheHelper
}

// NewChannelPostgreSQL creates the GORM-backed channel repository. The
// cache helper may be nil; reads then always go to the database.
func NewChannelPostgreSQL(db *gorm.DB, channelCache *cache.CacheHelper) repositories.ChannelRepository {
	return &channelPostgreSQL{db: db, channelCache: channelCache}
}

func (r *channelPostgreSQL) cacheKey(id string) string {
	return fmt.Sprintf("id:%s", id)
}

func (r *channelPostgreSQL) invalidate(ctx context.Context, id string) {
	if r.channelCache != nil {
		cache.SafeDelete(ctx, r.channelCache, r.cacheKey(id))
	}
}

func (r *channelPostgreSQL) Create(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

func (r *channelPostgreSQL) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	if r.channelCache != nil {
		var cached models.Channel
		if err := r.channelCache.Get(ctx, r.cacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var channel models.Channel
	if err := r.db.WithContext(ctx).Preload("Content").
		First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	if r.channelCache != nil {
		_ = r.channelCache.Set(ctx, r.cacheKey(id), &channel, cache.ChannelCacheConfig.TTL)
	}
	return &channel, nil
}

func (r *channelPostgreSQL) Update(ctx context.Context, channel *models.Channel) error {
	result := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", channel.ID).
		Select("Name", "Department", "Description", "MeetLink", "Price").
		Updates(channel)
	if result.Error != nil {
		return fmt.Errorf("failed to update channel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	r.invalidate(ctx, channel.ID)
	return nil
}

func (r *channelPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Channel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete channel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	if err := r.db.WithContext(ctx).Delete(&models.Content{}, "channel_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete channel content: %w", err)
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *channelPostgreSQL) List(ctx context.Context) ([]*models.Channel, error) {
	var channels []*models.Channel
	if err := r.db.WithContext(ctx).Preload("Content").
		Order("created_at ASC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

func (r *channelPostgreSQL) ListByProfessor(ctx context.Context, professorID string) ([]*models.Channel, error) {
	var channels []*models.Channel
	if err := r.db.WithContext(ctx).Preload("Content").
		Where("professor_id = ?", professorID).
		Order("created_at ASC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to list professor channels: %w", err)
	}
	return channels, nil
}

func (r *channelPostgreSQL) AddContent(ctx context.Context, content *models.Content) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", content.ChannelID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check channel: %w", err)
	}
	if count == 0 {
		return repositories.ErrNotFound
	}
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to add content: %w", err)
	}
	r.invalidate(ctx, content.ChannelID)
	return nil
}

func (r *channelPostgreSQL) ListContent(ctx context.Context, channelID string) ([]*models.Content, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", channelID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check channel: %w", err)
	}
	if count == 0 {
		return nil, repositories.ErrNotFound
	}

	var items []*models.Content
	if err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return items, nil
}

func (r *channelPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check channel existence: %w", err)
	}
	return count > 0, nil
}

func (r *channelPostgreSQL) IncrementSubscribers(ctx context.Context, channelID string, delta int) error {
	result := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", channelID).
		UpdateColumn("subscriber_count", gorm.Expr("GREATEST(subscriber_count + ?, 0)", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust subscriber count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	r.invalidate(ctx, channelID)
	return nil
}

func (r *channelPostgreSQL) SetRating(ctx context.Context, channelID string, rating float64, subscriberCount int) error {
	result := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ?", channelID).
		UpdateColumns(map[string]interface{}{
			"star_rating":      rating,
			"subscriber_count": subscriberCount,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	r.invalidate(ctx, channelID)
	return nil
}
