package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/querybox/internal/config"
	"github.com/deppfellow/querybox/internal/handler"
	"github.com/deppfellow/querybox/internal/logger"
	"github.com/deppfellow/querybox/internal/router"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/deppfellow/querybox/internal/service"
	"github.com/deppfellow/querybox/static"
	"github.com/rs/zerolog"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	services := service.NewServices(srv)
	handlers := handler.NewHandlers(srv, services, static.FS)
	r := router.NewRouter(srv, handlers, static.FS)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
