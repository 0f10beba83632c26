package middleware

import (
	"github.com/deppfellow/querybox/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups all middleware components used by the HTTP server.
//
// Shared dependencies (*server.Server and the New Relic application) are
// wired in once here and reused during router setup.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and transaction attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles clients and records denials.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
//
// When New Relic is not configured nrApp is nil and the tracing
// middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
