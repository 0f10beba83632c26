package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/querybox/internal/middleware"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its optional dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Redis is only checked when a client is configured and "redis" is among
// the enabled checks. A failed check answers 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// ---------------- Redis connectivity check -------------------------------
	obs := h.server.Config.Observability
	if h.server.Redis != nil && obs.HasCheck("redis") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       "redis",
				"operation":        "health_check",
				"error_type":       "redis_unhealthy",
				"response_time_ms": time.Since(redisStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check passed")
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(params map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", params)
	}
}
