package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository performs raw note CRUD. Ownership is NOT enforced here:
// GetByID loads any note so the service layer can apply the single
// owner check; ListByOwner is the only owner-scoped query.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64) error
}
