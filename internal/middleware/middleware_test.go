package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/querybox/internal/config"
	"github.com/deppfellow/querybox/internal/errs"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	return s
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer(t)
	global := NewGlobalMiddlewares(s)

	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error writes its message",
			method:     http.MethodGet,
			err:        errs.ValidationError("a", "a must be a number"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "a must be a number",
		},
		{
			name:       "wrapped http error",
			method:     http.MethodGet,
			err:        errors.Wrap(errs.ValidationError("text", "text is required"), "cipher"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "text is required",
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Route not found",
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusNotFound,
			wantBody:   "Route not found",
		},
		{
			name:       "other echo error keeps its status",
			method:     http.MethodGet,
			err:        echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "too big",
		},
		{
			name:       "unknown error is a generic 500",
			method:     http.MethodGet,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error",
		},
		{
			name:       "head has no body",
			method:     http.MethodHead,
			err:        errs.ValidationError("a", "a is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/sum", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			if tt.method != http.MethodHead {
				assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
			}
		})
	}
}

func TestGlobalErrorHandler_OverrideInProduction(t *testing.T) {
	s := newTestServer(t)
	s.Config.Observability.Environment = "production"
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	global.GlobalErrorHandler(errs.NewBadRequestError("internal detail", true, nil, nil), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", rec.Body.String())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(errs.ValidationError("a", "a is required")))
	assert.Equal(t, http.StatusNotFound, statusFromError(echo.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, statusFromError(echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom")))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, handler(c))
		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler(c))
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestEnhanceContext(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t)
	base := zerolog.New(&out)
	s.Logger = &base
	enhancer := NewContextEnhancer(s)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	c := e.NewContext(req, httptest.NewRecorder())

	// Without the middleware a no-op logger is returned.
	assert.NotNil(t, GetLogger(c))

	handler := RequestID()(enhancer.EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return nil
	}))
	require.NoError(t, handler(c))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-42"`)
		assert.Contains(t, line, `"method":"GET"`)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.Config.RateLimit.RequestsPerSecond = 0.001
	s.Config.RateLimit.Burst = 2

	// Denials are handed to the HTTP error handler, not returned.
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/sum", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/status", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func(target, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("/sum", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, call("/sum", "10.0.0.1:1234").Code)

	rec := call("/sum", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, MsgTooManyRequests, rec.Body.String())

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusOK, call("/sum", "10.0.0.2:1234").Code)

	// The health endpoint is skipped.
	assert.Equal(t, http.StatusOK, call("/status", "10.0.0.1:1234").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	s := newTestServer(t)
	s.Config.RateLimit.Enabled = false
	s.Config.RateLimit.Burst = 1
	s.Config.RateLimit.RequestsPerSecond = 0.001

	handler := NewRateLimitMiddleware(s).Limit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/sum", nil)
		assert.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	}
}
