package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// ErrFailedToApplyMigrations wraps any failure while applying the session
// schema.
var ErrFailedToApplyMigrations = errors.New("session.postgres.failed_to_apply_migrations")

// Migrate applies the session schema migrations embedded in this package.
// It is idempotent; already applied migrations are skipped. Goose tracks
// progress in its default goose_db_version table.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}
