package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/Gorani9/matzip-sub000/api/v1"
	"github.com/Gorani9/matzip-sub000/config"
	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure logging
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Initialize container with all dependencies
	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application container")
	}
	defer c.Close()

	// Perform migrations
	if cfg.MigrateOnStart {
		if err := c.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to perform migrations")
		}
	}

	// Initialize services
	searchService, err := services.NewSearchService(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize search service")
	}

	// Set up Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = v1.ErrorHandler()
	e.Use(middleware.Recover())
	e.Use(v1.RequestLogger())

	// Register API routes
	v1.RegisterRoutes(e, c, searchService)

	// Start the server
	go func() {
		log.Info().Msgf("Starting the server on :%d", cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Info().Msg("Shutting down the server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the server gracefully
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to gracefully shutdown server")
	}
}
