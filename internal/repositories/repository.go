package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Shared repository errors. Implementations translate their storage-level
// failures into these so services can dispatch without knowing the backend.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// IsNotFoundError reports whether err represents a missing record,
// regardless of which backend produced it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err represents a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// Repository aggregates all per-domain repositories behind one handle.
type Repository interface {
	User() UserRepository
	Channel() ChannelRepository
	Subscription() SubscriptionRepository
	Follow() FollowRepository
	Message() MessageRepository
	Announcement() AnnouncementRepository

	// WithTransaction runs fn atomically where the backend supports it.
	// The in-memory backend relies on the service-level per-entity locking
	// discipline instead and runs fn directly.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
