package handler

import (
	"time"

	"github.com/deppfellow/querybox/internal/middleware"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config and the logger through *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// BindFunc reads and validates a request from the query string.
//
// A returned error is an *errs.HTTPError whose message goes back to the
// client unchanged.
type BindFunc[Req any] func(c echo.Context) (Req, error)

// TextHandlerFunc computes the plain-text body for a validated request.
type TextHandlerFunc[Req any] func(c echo.Context, req Req) (string, error)

// HandlerFuncNoContent is a typed endpoint function for routes that return no response body.
type HandlerFuncNoContent[Req any] func(c echo.Context, req Req) error

// ResponseHandler defines how a successful result is written and which
// New Relic attributes it adds.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler kind in structured logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// TextResponseHandler writes a text/plain body with a given status code.
type TextResponseHandler struct {
	status int
}

func (h TextResponseHandler) Handle(c echo.Context, result interface{}) error {
	body, _ := result.(string)
	return c.String(h.status, body)
}

func (h TextResponseHandler) GetOperation() string {
	return "handler_text"
}

func (h TextResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if body, ok := result.(string); ok {
		txn.AddAttribute("response.length", len(body))
	}
}

// NoContentResponseHandler writes a status with an empty body.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware
}

// handleRequest is the shared execution pipeline for every typed handler.
//
// It runs the bind phase, then the handler phase, logging the duration of
// each and recording them on the New Relic transaction when one exists.
// Errors are returned untouched so the global error handler renders them.
func handleRequest[Req any](
	c echo.Context,
	bind BindFunc[Req],
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	req, err := bind(c)
	validationDuration := time.Since(validationStart)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())

		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// HandleText wraps a typed handler with validation, error handling, logging
// and tracing, and writes its result as a text/plain body.
//
//	router.GET("/sum", handler.HandleText(h, h.BindSum, h.Sum, http.StatusOK))
func HandleText[Req any](
	h Handler,
	bind BindFunc[Req],
	handler TextHandlerFunc[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, bind, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, TextResponseHandler{status: status})
	}
}

// HandleNoContent is HandleText for endpoints that answer with an empty body.
func HandleNoContent[Req any](
	h Handler,
	bind BindFunc[Req],
	handler HandlerFuncNoContent[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, bind, func(c echo.Context, req Req) (interface{}, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
