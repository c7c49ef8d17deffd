package items

import (
	"context"

	"github.com/smpn3pacet/pustaka/internal/client/models"
)

// Repository describes the local item store. Implementations are backed by a
// SQLite database keyed by item id.
type Repository interface {
	// UpsertAll inserts or replaces each item by id. Items absent from the
	// argument are left untouched; deletion is only ever explicit.
	UpsertAll(ctx context.Context, items []*models.Item) error

	// GetAll returns every stored item in unspecified order.
	GetAll(ctx context.Context) ([]*models.Item, error)

	// GetByID returns one item or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// DeleteByID removes one item by id. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error
}
