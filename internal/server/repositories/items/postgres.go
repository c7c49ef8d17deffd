package items

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smpn3pacet/pustaka/internal/dbx"
	"github.com/smpn3pacet/pustaka/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// Items are stored as one JSONB payload per row so the schema never lags the
// wire contract; created_at is duplicated into a column for ordering.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts or replaces an item by id.
func (r *PostgresRepository) Upsert(ctx context.Context, item *models.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item: %w", err)
	}

	query := `
		INSERT INTO items (id, payload, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at;
	`
	if _, err := r.db.ExecContext(ctx, query, item.ID, payload, item.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectAll returns every stored item ordered by created_at descending.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Item, error) {
	query := `SELECT payload FROM items ORDER BY created_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	result := []*models.Item{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item models.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes one item by id. Absent ids are ignored.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
