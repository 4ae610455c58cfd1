package repositories

import (
	"context"

	"github.com/edudz/platform-service/internal/models"
)

// SubscriptionRepository owns the explicit (student, channel) relation.
// The relation is the source of truth for subscriber counts; the channel
// counter is derived from it.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, studentID, channelID string) error
	Exists(ctx context.Context, studentID, channelID string) (bool, error)

	CountByChannel(ctx context.Context, channelID string) (int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Subscription, error)

	// DeleteByChannel removes every relation row for the channel and
	// returns how many were removed. Used by the channel-delete cascade.
	DeleteByChannel(ctx context.Context, channelID string) (int64, error)
}

// FollowRepository owns the student-professor follow relation.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, studentID, professorID string) error
	Exists(ctx context.Context, studentID, professorID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Follow, error)
}
