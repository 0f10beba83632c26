package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation UI.
//
// The page loads the reference renderer from a CDN and reads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(h.assets, "openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
