package memory

import (
	"context"
	"sync"
	"time"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

// channelRepository implements repositories.ChannelRepository using
// in-memory storage. Creation order is preserved for professor listings.
type channelRepository struct {
	mu       sync.RWMutex
	channels map[string]*models.Channel
	order    []string
	content  map[string][]*models.Content
}

func newChannelRepository() *channelRepository {
	return &channelRepository{
		channels: make(map[string]*models.Channel),
		content:  make(map[string][]*models.Content),
	}
}

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[channel.ID]; exists {
		return repositories.ErrDuplicate
	}

	now := time.Now()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	stored := *channel
	stored.Content = nil
	r.channels[channel.ID] = &stored
	r.order = append(r.order, channel.ID)
	return nil
}

// cloneLocked copies a channel with its content attached. Callers must
// hold at least the read lock.
func (r *channelRepository) cloneLocked(channel *models.Channel) *models.Channel {
	copied := *channel
	items := r.content[channel.ID]
	copied.Content = make([]models.Content, len(items))
	for i, item := range items {
		copied.Content[i] = *item
	}
	return &copied
}

func (r *channelRepository) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channel, exists := r.channels[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return r.cloneLocked(channel), nil
}

func (r *channelRepository) Update(ctx context.Context, channel *models.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.channels[channel.ID]
	if !exists {
		return repositories.ErrNotFound
	}

	channel.CreatedAt = current.CreatedAt
	channel.UpdatedAt = time.Now()

	stored := *channel
	stored.Content = nil
	r.channels[channel.ID] = &stored
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[id]; !exists {
		return repositories.ErrNotFound
	}

	delete(r.channels, id)
	delete(r.content, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *channelRepository) List(ctx context.Context) ([]*models.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]*models.Channel, 0, len(r.order))
	for _, id := range r.order {
		channels = append(channels, r.cloneLocked(r.channels[id]))
	}
	return channels, nil
}

func (r *channelRepository) ListByProfessor(ctx context.Context, professorID string) ([]*models.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]*models.Channel, 0)
	for _, id := range r.order {
		channel := r.channels[id]
		if channel.ProfessorID == professorID {
			channels = append(channels, r.cloneLocked(channel))
		}
	}
	return channels, nil
}

func (r *channelRepository) AddContent(ctx context.Context, content *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[content.ChannelID]; !exists {
		return repositories.ErrNotFound
	}

	content.CreatedAt = time.Now()
	stored := *content
	r.content[content.ChannelID] = append(r.content[content.ChannelID], &stored)
	return nil
}

func (r *channelRepository) ListContent(ctx context.Context, channelID string) ([]*models.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.channels[channelID]; !exists {
		return nil, repositories.ErrNotFound
	}

	items := r.content[channelID]
	copied := make([]*models.Content, len(items))
	for i, item := range items {
		c := *item
		copied[i] = &c
	}
	return copied, nil
}

func (r *channelRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.channels[id]
	return exists, nil
}

func (r *channelRepository) IncrementSubscribers(ctx context.Context, channelID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, exists := r.channels[channelID]
	if !exists {
		return repositories.ErrNotFound
	}

	channel.SubscriberCount += delta
	if channel.SubscriberCount < 0 {
		channel.SubscriberCount = 0
	}
	channel.UpdatedAt = time.Now()
	return nil
}

func (r *channelRepository) SetRating(ctx context.Context, channelID string, rating float64, subscriberCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, exists := r.channels[channelID]
	if !exists {
		return repositories.ErrNotFound
	}

	channel.StarRating = rating
	channel.SubscriberCount = subscriberCount
	channel.UpdatedAt = time.Now()
	return nil
}
