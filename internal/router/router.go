// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps each path to its handler.
package router

import (
	"io/fs"

	"github.com/deppfellow/querybox/internal/handler"
	"github.com/deppfellow/querybox/internal/middleware"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered. assets is served under /static.
func NewRouter(s *server.Server, h *handler.Handlers, assets fs.FS) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context logger is
	// built, and the New Relic transaction before tracing attributes.
	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h, assets)
	registerComputeRoutes(router, h)
	registerMenuRoutes(router, h)

	return router
}
