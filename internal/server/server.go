// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - optional redis client
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/querybox/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/querybox/internal/logger"
)

// RedisPingTimeout bounds the startup connectivity check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger(s)
//   - the redis connection, nil when no address is configured
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	Redis *redis.Client

	// httpServer is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
//
// Redis is only created when cfg.Redis.Address is set. A failed ping is
// logged and startup continues: redis only backs rate limiting, and the
// health check reports its state.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// Hooks instrument Redis commands so they show up in traces.
		if loggerService != nil && loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("Failed to connect to Redis, continuing without a healthy Redis")
		}

		server.Redis = redisClient
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server.
//
// The router is passed in as handler; *echo.Echo satisfies http.Handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores whole seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// It requires SetupHTTPServer to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// It stops the HTTP server (finishing inflight requests until the ctx
// deadline), then closes redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis connection: %w", err)
		}
	}

	return nil
}
