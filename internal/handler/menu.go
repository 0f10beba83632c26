package handler

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/deppfellow/querybox/internal/middleware"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/deppfellow/querybox/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	BurgersText   = "We have juicy cheese burgers!"
	PepperoniText = "We don't serve that here. Never call again!"
	BrobroText    = "No time to flurg around!  Oh snap auto pop son!"
)

// MenuHandler serves the fixed-text endpoints and the request introspection ones.
type MenuHandler struct {
	Handler
}

func NewMenuHandler(s *server.Server) *MenuHandler {
	return &MenuHandler{
		Handler: NewHandler(s),
	}
}

// Text returns a handler that always answers 200 with body.
func (h *MenuHandler) Text(body string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}
}

// Echo describes the request. The base URL is always empty since routes
// are mounted at the root.
func (h *MenuHandler) Echo(c echo.Context) error {
	req := c.Request()

	body := fmt.Sprintf("Here are some details of your request:\n"+
		"        Base URL: \n"+
		"        Host: %s\n"+
		"        Path: %s\n"+
		"        ", hostname(req), req.URL.Path)

	return c.String(http.StatusOK, body)
}

// QueryViewer logs the parsed query string and answers with an empty body.
func (h *MenuHandler) QueryViewer(c echo.Context) error {
	query := c.QueryParams()

	names := make(map[string]struct{}, len(query))
	for key := range query {
		name, _, _ := strings.Cut(key, "[")
		names[name] = struct{}{}
	}

	dict := zerolog.Dict()
	for _, name := range slices.Sorted(maps.Keys(names)) {
		raw := validation.Lookup(query, name)
		switch {
		case raw.Array || raw.Object:
			dict = dict.Strs(name, raw.Values)
		case len(raw.Values) == 1:
			dict = dict.Str(name, raw.Values[0])
		}
	}

	middleware.GetLogger(c).Info().Dict("query", dict).Msg("query viewer")

	return c.NoContent(http.StatusOK)
}

// hostname strips the port from the Host header. Bracketed IPv6
// literals keep their brackets.
func hostname(req *http.Request) string {
	host := req.Host

	offset := 0
	if strings.HasPrefix(host, "[") {
		offset = strings.IndexByte(host, ']') + 1
	}
	if i := strings.IndexByte(host[offset:], ':'); i != -1 {
		return host[:offset+i]
	}
	return host
}
