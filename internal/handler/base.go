package handler

import (
	"time"

	"github.com/donorops/backend/internal/middleware"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it to reach config, logger,
// db, redis, and the job client through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only holds a pointer, so copies still point at the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function: it receives a validated
// request payload and returns a response or an error. Req is a pointer
// type in practice, because Echo's Bind needs a pointer to populate.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint function for routes that
// return no response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler defines how a successful handler result is written
// to the HTTP response and which observability attributes to attach.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured
	// logging, distinguishing handler types (json/no_content/file).
	GetOperation() string

	// AddAttributes attaches New Relic attributes derived from the
	// response type and result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware.
}

// NoContentResponseHandler writes responses with no body.
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
	// http.status_code is already set by tracing middleware.
}

// FileResponseHandler writes a file download response. The handler
// result must be a []byte.
type FileResponseHandler struct {
	status      int
	filename    string
	contentType string
}

func (h FileResponseHandler) Handle(c echo.Context, result interface{}) error {
	data := result.([]byte)

	c.Response().Header().Set("Content-Disposition", "attachment; filename="+h.filename)

	return c.Blob(h.status, h.contentType, data)
}

func (h FileResponseHandler) GetOperation() string {
	return "handler_file"
}

func (h FileResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		txn.AddAttribute("file.name", h.filename)
		txn.AddAttribute("file.content_type", h.contentType)
		if data, ok := result.([]byte); ok {
			txn.AddAttribute("file.size_bytes", len(data))
		}
	}
}

// handleRequest is the shared execution pipeline for all handlers. It
// centralizes request binding + validation, structured logging, New
// Relic attributes and error reporting, phase timing, and response
// writing.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	path := c.Path()
	route := path

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	// The context-enhanced logger already carries request_id, user_id,
	// and trace ids.
	loggerBuilder := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("path", path).
		Str("route", route)

	if fileHandler, ok := responseHandler.(FileResponseHandler); ok {
		loggerBuilder = loggerBuilder.
			Str("filename", fileHandler.filename).
			Str("content_type", fileHandler.contentType)
	}

	logger := loggerBuilder.Logger()

	logger.Info().Msg("handling request")

	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
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

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

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

// Validatable constrains the request pointer type so each request can
// be allocated fresh per call. Sharing one bound struct across
// concurrent requests would race.
type Validatable[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps a typed handler with validation, error handling,
// logging, metrics, and tracing, returning an echo.HandlerFunc ready
// to register on a route. The request type is inferred from the
// handler's signature.
func Handle[Req any, PReq Validatable[Req], Res any](
	h Handler,
	handler HandlerFunc[PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFile wraps a handler that returns file bytes into the unified
// pipeline, setting download headers on the response.
func HandleFile[Req any, PReq Validatable[Req]](
	h Handler,
	handler HandlerFunc[PReq, []byte],
	status int,
	filename string,
	contentType string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, FileResponseHandler{
			status:      status,
			filename:    filename,
			contentType: contentType,
		})
	}
}

// HandleNoContent wraps a handler for endpoints that return no body.
func HandleNoContent[Req any, PReq Validatable[Req]](
	h Handler,
	handler HandlerFuncNoContent[PReq],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			err := handler(c, req)
			return nil, err
		}, NoContentResponseHandler{status: status})
	}
}
