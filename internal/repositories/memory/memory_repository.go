// Package memory implements the repository contracts against process-local
// maps. It is the authoritative backend: the platform's consistency rules
// are enforced by the service layer's per-entity locking, so this package
// only guarantees that each individual operation is race-free.
package memory

import (
	"context"

	"github.com/edudz/platform-service/internal/repositories"
)

// MemoryRepository implements the aggregate Repository interface.
type MemoryRepository struct {
	user         *userRepository
	channel      *channelRepository
	subscription *subscriptionRepository
	follow       *followRepository
	message      *messageRepository
	announcement *announcementRepository
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() repositories.Repository {
	return &MemoryRepository{
		user:         newUserRepository(),
		channel:      newChannelRepository(),
		subscription: newSubscriptionRepository(),
		follow:       newFollowRepository(),
		message:      newMessageRepository(),
		announcement: newAnnouncementRepository(),
	}
}

func (r *MemoryRepository) User() repositories.UserRepository { return r.user }

func (r *MemoryRepository) Channel() repositories.ChannelRepository { return r.channel }

func (r *MemoryRepository) Subscription() repositories.SubscriptionRepository {
	return r.subscription
}

func (r *MemoryRepository) Follow() repositories.FollowRepository { return r.follow }

func (r *MemoryRepository) Message() repositories.MessageRepository { return r.message }

func (r *MemoryRepository) Announcement() repositories.AnnouncementRepository {
	return r.announcement
}

// WithTransaction runs fn directly. Atomicity across entities is provided
// by the per-entity locks the services hold while calling in here.
func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }
