package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edudz/platform-service/internal/models"
)

// messageRepository implements repositories.MessageRepository. The log is
// append-only; seq numbers give a stable order for equal timestamps.
type messageRepository struct {
	mu       sync.RWMutex
	messages []*models.ChatMessage
	nextSeq  int64
}

func newMessageRepository() *messageRepository {
	return &messageRepository{nextSeq: 1}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.Seq = r.nextSeq
	r.nextSeq++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	stored := *msg
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userA, userB string) ([]*models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.ChatMessage, 0)
	for _, msg := range r.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			copied := *msg
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Seq < matched[j].Seq
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}
