package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/smpn3pacet/pustaka/internal/client/migrations"
	"github.com/smpn3pacet/pustaka/internal/client/repositories/items"
)

// Repositories bundles the local store handles used by the services layer.
type Repositories struct {
	Items items.Repository
	DB    *sql.DB
}

// RunMigrations applies the embedded client schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local SQLite database, applies migrations and
// returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Items: items.NewSQLiteRepository(db),
		DB:    db,
	}, nil
}
