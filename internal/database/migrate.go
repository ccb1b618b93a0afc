package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// RunMigrations applies all embedded schema migrations to the local database.
// It is safe to call on every start; goose tracks applied versions.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetDialect, err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	slog.Default().Info(LogMsgMigrationsComplete)
	return nil
}
