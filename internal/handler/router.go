package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// Routes is implemented by every handler
type Routes interface {
	Register(e *echo.Echo)
}

// ServerOptions configures NewServer
type ServerOptions struct {
	CORSOrigins []string
	Limiter     Limiter     // nil disables rate limiting
	Logger      echo.Logger // nil keeps echo's default logger
}

// NewServer creates an echo instance with the shared middleware, error
// handling and validation, and registers every handler's routes.
func NewServer(opts ServerOptions, handlers ...Routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = validation.New()
	if opts.Logger != nil {
		e.Logger = opts.Logger
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infoj(log.JSON{
				"id":      v.RequestID,
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	if opts.Limiter != nil {
		e.Use(RateLimit(opts.Limiter))
	}

	for _, h := range handlers {
		h.Register(e)
	}

	return e
}
