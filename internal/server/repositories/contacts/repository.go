package contacts

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}
