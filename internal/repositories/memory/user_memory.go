package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

// userRepository implements repositories.UserRepository using in-memory
// storage. Emails are indexed case-insensitively.
type userRepository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
}

func newUserRepository() *userRepository {
	return &userRepository{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return repositories.ErrDuplicate
	}
	if _, exists := r.users[user.ID]; exists {
		return repositories.ErrDuplicate
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	r.byEmail[key] = user.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[emailKey(email)]
	if !exists {
		return nil, repositories.ErrNotFound
	}

	copied := *r.users[id]
	return &copied, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.users[user.ID]
	if !exists {
		return repositories.ErrNotFound
	}

	// Email changes must keep the uniqueness index consistent.
	oldKey := emailKey(current.Email)
	newKey := emailKey(user.Email)
	if oldKey != newKey {
		if _, taken := r.byEmail[newKey]; taken {
			return repositories.ErrDuplicate
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = user.ID
	}

	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.users[id]
	return exists, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byEmail[emailKey(email)]
	return exists, nil
}

func (r *userRepository) ListProfessors(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	professors := make([]*models.User, 0)
	for _, user := range r.users {
		if user.Role == models.RoleProfessor {
			copied := *user
			professors = append(professors, &copied)
		}
	}
	return professors, nil
}

func (r *userRepository) AddStars(ctx context.Context, professorID string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[professorID]
	if !exists {
		return repositories.ErrNotFound
	}

	user.Stars += delta
	user.UpdatedAt = time.Now()
	return nil
}

func (r *userRepository) SetStars(ctx context.Context, professorID string, stars float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[professorID]
	if !exists {
		return repositories.ErrNotFound
	}

	user.Stars = stars
	user.UpdatedAt = time.Now()
	return nil
}
