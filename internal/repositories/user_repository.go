package repositories

import (
	"context"

	"github.com/edudz/platform-service/internal/models"
)

// UserRepository owns User records. It is the only component allowed to
// mutate them; every other component reads through this contract.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListProfessors returns every professor; used by the rating sweep.
	ListProfessors(ctx context.Context) ([]*models.User, error)

	// AddStars applies the interactive reputation bonus atomically.
	AddStars(ctx context.Context, professorID string, delta float64) error

	// SetStars overwrites the reputation score (sweep semantics).
	SetStars(ctx context.Context, professorID string, stars float64) error
}
