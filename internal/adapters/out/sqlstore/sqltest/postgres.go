// Package sqltest starts a throwaway Postgres for integration suites.
package sqltest

import (
	"context"
	"time"

	"encargos/internal/adapters/out/sqlstore"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated Postgres container and its gorm connection.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// StartPostgres runs postgres:15-alpine and migrates the schema.
func StartPostgres(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	cfg := sqlstore.DefaultConfig()
	cfg.DSN = dsn
	cfg.LogLevel = "silent"
	db, err := sqlstore.Open(cfg)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = sqlstore.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE orders, persons, catalog_items").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
