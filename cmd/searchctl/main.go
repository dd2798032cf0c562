package main

import (
	"context"
	"os"

	"github.com/Gorani9/matzip-sub000/config"
	"github.com/Gorani9/matzip-sub000/container"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "searchctl",
		Usage: "Run searches and maintenance against the matzip database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path of a .env file to load before reading the environment",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if path := c.String("env-file"); path != "" {
				if err := os.Setenv("ENV_PATH", path); err != nil {
					return ctx, err
				}
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			MigrateCommand(),
			SearchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("searchctl failed")
	}
}

// openContainer loads configuration and connects to the database.
func openContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	return container.NewContainer(cfg)
}

// MigrateCommand applies the embedded schema migrations.
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctr, err := openContainer()
			if err != nil {
				return err
			}
			defer ctr.Close()

			if err := ctr.Migrate(); err != nil {
				return err
			}

			log.Info().Msg("Migrations applied")
			return nil
		},
	}
}
