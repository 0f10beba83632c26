package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the HTTP header used to carry the request correlation ID.
	// Proxies in front of the service may already set it.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the internal key used to store the ID in Echo context.
	RequestIDKey = "request_id"
)

// RequestID returns an Echo middleware that ensures each request has a request ID.
//
// Behavior:
//   - If incoming request already has X-Request-ID header: reuse it.
//   - If not: generate a new UUID.
//   - Store it in Echo context (c.Set) for internal access.
//   - Set it on response header so clients can see it too.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// An incoming id is kept as is.
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			// Read back by the context enhancer, the tracing middleware
			// and GetRequestID.
			c.Set(RequestIDKey, requestID)

			// Echoed to the client for correlation with the logs.
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from Echo context.
//
// Returns empty string if not set.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
