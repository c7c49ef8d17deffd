// Package items provides the PostgreSQL-backed repository for server-side
// item persistence.
package items

import (
	"context"

	"github.com/smpn3pacet/pustaka/internal/server/models"
)

// Repository abstracts item storage for the HTTP layer.
type Repository interface {
	// Upsert inserts or fully replaces one item by id.
	Upsert(ctx context.Context, item *models.Item) error

	// SelectAll returns the whole collection, newest first.
	SelectAll(ctx context.Context) ([]*models.Item, error)

	// Delete removes one item by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
