package router

import (
	"net/http"

	"github.com/deppfellow/querybox/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerComputeRoutes(r *echo.Echo, h *handler.Handlers) {
	compute := h.Compute

	r.GET("/sum", handler.HandleText(compute.Handler, compute.BindSum, compute.Sum, http.StatusOK))
	r.GET("/cipher", handler.HandleText(compute.Handler, compute.BindCipher, compute.Cipher, http.StatusOK))
	r.GET("/lotto", handler.HandleText(compute.Handler, compute.BindLotto, compute.Lotto, http.StatusOK))
}
