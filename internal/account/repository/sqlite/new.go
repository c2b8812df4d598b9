package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"yeargrid/internal/account/repository"
	"yeargrid/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a SQLite-backed Repository for linked accounts.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("account/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Migrate creates the schema. Safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS linked_accounts (
			user_id       TEXT NOT NULL,
			provider      TEXT NOT NULL,
			account_id    TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			access_token  TEXT NOT NULL,
			refresh_token TEXT NOT NULL DEFAULT '',
			expires_at    INTEGER NOT NULL DEFAULT 0,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, provider, account_id)
		);
		CREATE INDEX IF NOT EXISTS idx_linked_accounts_user ON linked_accounts (user_id);`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate linked_accounts: %w", err)
	}
	return nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("account/repository/sqlite.%s", method)
}
