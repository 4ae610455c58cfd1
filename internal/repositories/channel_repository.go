package repositories

import (
	"context"

	"github.com/edudz/platform-service/internal/models"
)

// ChannelRepository owns Channel and Content records. Content is
// append-only within its channel.
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, id string) (*models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]*models.Channel, error)
	// ListByProfessor returns the professor's channels in creation order.
	ListByProfessor(ctx context.Context, professorID string) ([]*models.Channel, error)

	AddContent(ctx context.Context, content *models.Content) error
	ListContent(ctx context.Context, channelID string) ([]*models.Content, error)

	ExistsByID(ctx context.Context, id string) (bool, error)

	// IncrementSubscribers adjusts the derived counter by delta. The
	// counter never goes below zero.
	IncrementSubscribers(ctx context.Context, channelID string, delta int) error

	// SetRating overwrites the star rating and reconciles the subscriber
	// counter in one write (sweep semantics).
	SetRating(ctx context.Context, channelID string, rating float64, subscriberCount int) error
}
