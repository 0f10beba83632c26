package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/deppfellow/querybox/internal/config"
	"github.com/deppfellow/querybox/internal/handler"
	"github.com/deppfellow/querybox/internal/middleware"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/deppfellow/querybox/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func newTestRouter(t *testing.T, configure func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"
	if configure != nil {
		configure(cfg)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	assets := fstest.MapFS{
		"openapi.html": &fstest.MapFile{Data: []byte("<html>docs</html>")},
		"openapi.json": &fstest.MapFile{Data: []byte(`{"openapi":"3.0.3"}`)},
	}
	services := &service.Services{Lotto: service.NewLottoService(s.Logger, firstPicker{})}

	return NewRouter(s, handler.NewHandlers(s, services, assets), assets)
}

func get(r *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"sum", "/sum?a=3&b=4", http.StatusOK, "The sum of 3 and 4 is 7"},
		{"sum missing a", "/sum?b=4", http.StatusBadRequest, "a is required"},
		{"sum bad a", "/sum?a=foo&b=2", http.StatusBadRequest, "a must be a number"},
		{"sum object a", "/sum?a[x]=1&b=2", http.StatusBadRequest, "a must be a number"},
		{"cipher", "/cipher?text=abc&shift=2", http.StatusOK, "CDE"},
		{"cipher bad shift", "/cipher?text=abc&shift=x", http.StatusBadRequest, "shift must be a number"},
		{"lotto jackpot", "/lotto?numbers[]=1&numbers[]=2&numbers[]=3&numbers[]=4&numbers[]=5&numbers[]=6", http.StatusOK, "Wow! Unbelievable! You could have won the mega millions!"},
		{"lotto free ticket", "/lotto?numbers=1&numbers=2&numbers=3&numbers=4&numbers=19&numbers=20", http.StatusOK, "Congratulations, you win a free ticket!"},
		{"lotto scalar", "/lotto?numbers=3", http.StatusBadRequest, "numbers must an array"},
		{"lotto index past the limit", "/lotto?numbers[0]=1&numbers[1]=2&numbers[2]=3&numbers[3]=4&numbers[4]=5&numbers[21]=6", http.StatusBadRequest, "numbers must an array"},
		{"lotto short", "/lotto?numbers=1&numbers=2", http.StatusBadRequest, "numbers must contain 6 integers between 1 and 20"},
		{"burgers", "/burgers", http.StatusOK, "We have juicy cheese burgers!"},
		{"pepperoni", "/pizza/pepperoni", http.StatusOK, "We don't serve that here. Never call again!"},
		{"brobro", "/yolo/brobro", http.StatusOK, "No time to flurg around!  Oh snap auto pop son!"},
		{"query viewer", "/queryViewer?a=1", http.StatusOK, ""},
		{"docs", "/docs", http.StatusOK, "<html>docs</html>"},
		{"static", "/static/openapi.json", http.StatusOK, `{"openapi":"3.0.3"}`},
		{"unknown route", "/nope", http.StatusNotFound, "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(r, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRoutes_ErrorsArePlainText(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := get(r, "/sum?a=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
	assert.Equal(t, "b is required", rec.Body.String())
}

func TestRoutes_WrongMethod(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sum?a=1&b=2", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", rec.Body.String())
}

func TestRoutes_RequestID(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := get(r, "/burgers")
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/burgers", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRoutes_Status(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := get(r, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRoutes_RateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 1
	})

	assert.Equal(t, http.StatusOK, get(r, "/burgers").Code)

	rec := get(r, "/burgers")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, middleware.MsgTooManyRequests, rec.Body.String())

	// The health endpoint is never throttled.
	assert.Equal(t, http.StatusOK, get(r, "/status").Code)
}
