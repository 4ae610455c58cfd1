package memory

import (
	"context"
	"sync"
	"time"

	"github.com/edudz/platform-service/internal/models"
)

// announcementRepository implements repositories.AnnouncementRepository.
type announcementRepository struct {
	mu          sync.RWMutex
	byProfessor map[string][]*models.Announcement
}

func newAnnouncementRepository() *announcementRepository {
	return &announcementRepository{
		byProfessor: make(map[string][]*models.Announcement),
	}
}

func (r *announcementRepository) Create(ctx context.Context, ann *models.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ann.CreatedAt.IsZero() {
		ann.CreatedAt = time.Now()
	}

	stored := *ann
	r.byProfessor[ann.ProfessorID] = append(r.byProfessor[ann.ProfessorID], &stored)
	return nil
}

func (r *announcementRepository) ListByProfessor(ctx context.Context, professorID string) ([]*models.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byProfessor[professorID]
	// Newest first: reverse of append order.
	copied := make([]*models.Announcement, len(items))
	for i, ann := range items {
		a := *ann
		copied[len(items)-1-i] = &a
	}
	return copied, nil
}
