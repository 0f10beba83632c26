package router

import (
	"io/fs"

	"github.com/deppfellow/querybox/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API itself:
// health, docs UI and the static documentation assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, assets fs.FS) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", assets)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
