package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/noah-isme/easycd-api/migrations"
)

// MigrateCommands lists the goose commands exposed by the admin CLI.
var MigrateCommands = []string{"up", "up-by-one", "down", "redo", "reset", "status", "version"}

// gooseRun is swapped in tests.
var gooseRun = goose.RunContext

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if !isMigrateCommand(command) {
		return fmt.Errorf("%q: no such migrate command", command)
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseRun(ctx, command, db, migrations.Dir, args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

func isMigrateCommand(command string) bool {
	for _, c := range MigrateCommands {
		if c == command {
			return true
		}
	}
	return false
}
