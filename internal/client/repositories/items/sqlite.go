// Package items provides the client-side persistence layer for documentation
// items. Each item is stored as a whole JSON record keyed by id, so every
// write replaces the full item and partial writes cannot occur.
package items

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/common"
	"github.com/smpn3pacet/pustaka/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// UpsertAll inserts or replaces each item by id. The whole JSON payload is
// swapped on conflict, so repeated upserts of an unchanged item are idempotent.
// When bound to a *sql.DB the list lands in one transaction: a reconciled
// collection must never be half-applied.
func (r *SQLiteRepository) UpsertAll(ctx context.Context, list []*models.Item) error {
	query := `INSERT INTO items (id, payload, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET payload = excluded.payload,
				created_at = excluded.created_at
	`

	payloads := make([][]byte, len(list))
	for i, item := range list {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item %s: %w", item.ID, err)
		}
		payloads[i] = payload
	}

	exec := func(ctx context.Context, db dbx.DBTX) error {
		for i, item := range list {
			if _, err := db.ExecContext(ctx, query, item.ID, payloads[i], item.CreatedAt); err != nil {
				return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
			}
		}
		return nil
	}

	db, ok := r.db.(*sql.DB)
	if !ok {
		// Already inside a caller-owned transaction.
		return exec(ctx, r.db)
	}

	if err := dbx.WithTx(ctx, db, nil, exec); err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			return err
		}
		// Begin/commit failures surface here.
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

// GetAll lists every stored item. Order is unspecified; callers sort.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM items`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item models.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("failed to decode stored item: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one item by id, or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM items WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	var item models.Item
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("failed to decode stored item: %w", err)
	}
	return &item, nil
}

// DeleteByID removes one item. Missing ids are ignored.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
