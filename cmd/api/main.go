package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/database"
	"github.com/donorops/backend/internal/handler"
	"github.com/donorops/backend/internal/logger"
	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/router"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer loggerService.Shutdown()

	log := logger.New(cfg, loggerService)

	if err := database.Migrate(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewService(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	mw := middleware.NewMiddlewares(s, services.Auth)
	handlers := handler.NewHandlers(s, services)

	e := router.New(mw, handlers)
	s.SetupHTTPServer(e)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
		os.Exit(1)
	}

	log.Info().Msg("Server stopped")
}
