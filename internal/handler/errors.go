package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse builds the error body for an HTTP status
func NewErrorResponse(code int) ErrorResponse {
	message, ok := statusMessages[code]
	if !ok {
		message = strings.ToLower(http.StatusText(code))
	}
	return ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	}
}

// ErrorHandler renders errors returned by handlers and middleware as an
// ErrorResponse. It replaces echo's default HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Internal != nil {
			err = he.Internal
		}
	}

	req := c.Request()
	switch {
	case code >= http.StatusInternalServerError:
		c.Logger().Errorf("%s %s: %v", req.Method, req.URL.Path, err)
	case he == nil || he.Internal != nil:
		c.Logger().Warnf("%s %s: %v", req.Method, req.URL.Path, err)
	}

	if req.Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, NewErrorResponse(code))
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func badRequest(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
}

func notFound(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
}

func unprocessable(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
}
