package memory

import (
	"context"
	"sync"
	"time"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

type relationKey struct {
	studentID string
	otherID   string
}

// subscriptionRepository implements repositories.SubscriptionRepository.
// Rows are indexed both by (student, channel) and by channel so the
// delete cascade does not scan the whole relation.
type subscriptionRepository struct {
	mu        sync.RWMutex
	rows      map[relationKey]*models.Subscription
	byChannel map[string]map[string]struct{}
}

func newSubscriptionRepository() *subscriptionRepository {
	return &subscriptionRepository{
		rows:      make(map[relationKey]*models.Subscription),
		byChannel: make(map[string]map[string]struct{}),
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := relationKey{studentID: sub.StudentID, otherID: sub.ChannelID}
	if _, exists := r.rows[key]; exists {
		return repositories.ErrDuplicate
	}

	sub.CreatedAt = time.Now()
	stored := *sub
	r.rows[key] = &stored

	students, ok := r.byChannel[sub.ChannelID]
	if !ok {
		students = make(map[string]struct{})
		r.byChannel[sub.ChannelID] = students
	}
	students[sub.StudentID] = struct{}{}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, studentID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := relationKey{studentID: studentID, otherID: channelID}
	if _, exists := r.rows[key]; !exists {
		return repositories.ErrNotFound
	}

	delete(r.rows, key)
	if students, ok := r.byChannel[channelID]; ok {
		delete(students, studentID)
		if len(students) == 0 {
			delete(r.byChannel, channelID)
		}
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, studentID, channelID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.rows[relationKey{studentID: studentID, otherID: channelID}]
	return exists, nil
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byChannel[channelID])), nil
}

func (r *subscriptionRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*models.Subscription, 0)
	for key, sub := range r.rows {
		if key.studentID == studentID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}
	return subs, nil
}

func (r *subscriptionRepository) DeleteByChannel(ctx context.Context, channelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, ok := r.byChannel[channelID]
	if !ok {
		return 0, nil
	}

	removed := int64(len(students))
	for studentID := range students {
		delete(r.rows, relationKey{studentID: studentID, otherID: channelID})
	}
	delete(r.byChannel, channelID)
	return removed, nil
}

// followRepository implements repositories.FollowRepository.
type followRepository struct {
	mu   sync.RWMutex
	rows map[relationKey]*models.Follow
}

func newFollowRepository() *followRepository {
	return &followRepository{rows: make(map[relationKey]*models.Follow)}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := relationKey{studentID: follow.StudentID, otherID: follow.ProfessorID}
	if _, exists := r.rows[key]; exists {
		return repositories.ErrDuplicate
	}

	follow.CreatedAt = time.Now()
	stored := *follow
	r.rows[key] = &stored
	return nil
}

func (r *followRepository) Delete(ctx context.Context, studentID, professorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := relationKey{studentID: studentID, otherID: professorID}
	if _, exists := r.rows[key]; !exists {
		return repositories.ErrNotFound
	}

	delete(r.rows, key)
	return nil
}

func (r *followRepository) Exists(ctx context.Context, studentID, professorID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.rows[relationKey{studentID: studentID, otherID: professorID}]
	return exists, nil
}

func (r *followRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Follow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	follows := make([]*models.Follow, 0)
	for key, follow := range r.rows {
		if key.studentID == studentID {
			copied := *follow
			follows = append(follows, &copied)
		}
	}
	return follows, nil
}
