package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationsDir is the directory inside Migrations holding the goose files.
const MigrationsDir = "migrations"

// Migrations holds the schema as goose SQL migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Migrate runs a goose command ("up", "down", "status", "version", ...)
// against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}
