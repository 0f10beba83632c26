package router

import (
	"github.com/deppfellow/querybox/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerMenuRoutes(r *echo.Echo, h *handler.Handlers) {
	menu := h.Menu

	r.GET("/burgers", menu.Text(handler.BurgersText))
	r.GET("/pizza/pepperoni", menu.Text(handler.PepperoniText))
	r.GET("/yolo/brobro", menu.Text(handler.BrobroText))
	r.GET("/echo", menu.Echo)
	r.GET("/queryViewer", menu.QueryViewer)
}
