package middleware

import (
	"math"
	"net/http"
	"time"

	"github.com/deppfellow/querybox/internal/errs"
	"github.com/deppfellow/querybox/internal/lib/ratestore"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitKeyPrefix namespaces rate limit counters in Redis.
const RateLimitKeyPrefix = "querybox:ratelimit:"

// MsgTooManyRequests is the body of a throttled response.
const MsgTooManyRequests = "Too many requests, slow down"

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit reports a throttled request to New Relic as a custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// Store picks the limiter backend: a shared fixed window in Redis when a
// client is configured, otherwise an in-process token bucket per client IP.
func (r *RateLimitMiddleware) Store() middleware.RateLimiterStore {
	cfg := r.server.Config.RateLimit

	if r.server.Redis != nil {
		window := time.Duration(cfg.Window) * time.Second
		return ratestore.NewRedisStore(r.server.Redis, ratestore.Options{
			Prefix: RateLimitKeyPrefix,
			Limit:  int64(math.Ceil(cfg.RequestsPerSecond * float64(cfg.Window))),
			Window: window,
		}, r.server.Logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: time.Duration(cfg.ExpiresIn) * time.Second,
	})
}

// Limit returns the rate limiting middleware. It passes everything through
// when rate limiting is disabled. The health endpoint is never throttled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	if !r.server.Config.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/status"
		},
		Store: r.Store(),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return &echo.HTTPError{Code: http.StatusForbidden, Message: http.StatusText(http.StatusForbidden), Internal: err}
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError(MsgTooManyRequests)
		},
	})
}
