// Package storagetest starts a disposable PostgreSQL for integration tests and
// applies the embedded migrations to it.
package storagetest

import (
	"context"
	"fmt"
	"time"

	"github.com/Gorani9/matzip-sub000/storage"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
	Postgres   *storage.Postgres
}

func NewPGContainer(ctx context.Context) (*PGContainer, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:17.5",
		postgres.WithDatabase("matzip_test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pg, err := storage.NewPostgres(connStr)
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, err
	}

	if err := pg.Migrate(); err != nil {
		pg.Close()
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, err
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
		Postgres:   pg,
	}, nil
}

// Reset empties every table so each test starts from a known state.
func (c *PGContainer) Reset(ctx context.Context) error {
	_, err := c.Postgres.Pool.Exec(ctx, "TRUNCATE scraps, hearts, comments, reviews, follows, users RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	return nil
}

func (c *PGContainer) Terminate() error {
	c.Postgres.Close()
	return testcontainers.TerminateContainer(c.Container)
}
