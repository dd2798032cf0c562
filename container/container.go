package container

import (
	"fmt"

	"github.com/Gorani9/matzip-sub000/config"
	"github.com/Gorani9/matzip-sub000/storage"
)

type Container struct {
	Config   *config.Config
	Postgres *storage.Postgres
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize postgres client
	postgresClient, err := storage.NewPostgres(cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	return &Container{
		Config:   cfg,
		Postgres: postgresClient,
	}, nil
}

// Migrate applies pending schema migrations
func (c *Container) Migrate() error {
	return c.Postgres.Migrate()
}

// Close gracefully shuts down all container resources
func (c *Container) Close() {
	if c.Postgres != nil {
		c.Postgres.Close()
	}
}
