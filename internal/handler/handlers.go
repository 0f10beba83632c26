package handler

import (
	"io/fs"

	"github.com/deppfellow/querybox/internal/server"
	"github.com/deppfellow/querybox/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one value.
type Handlers struct {
	Compute *ComputeHandler
	Menu    *MenuHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container. assets holds the
// documentation files served by /docs.
func NewHandlers(s *server.Server, services *service.Services, assets fs.FS) *Handlers {
	return &Handlers{
		Compute: NewComputeHandler(s, services),
		Menu:    NewMenuHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, assets),
	}
}
