// Package migrate applies the embedded SQL migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
)

const (
	Up   = "up"
	Down = "down"
)

var ErrNoChange = migrate.ErrNoChange

// Run migrates the database at dsn in the given direction. Being already at
// the target version is not an error.
func Run(dsn, direction string) error {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("migrate: DATABASE_URL is not set")
	}
	if direction != Up && direction != Down {
		return fmt.Errorf("migrate: direction must be %q or %q, got %q", Up, Down, direction)
	}

	src, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
