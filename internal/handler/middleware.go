package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests beyond the limiter's allowance with 429. Clients
// are keyed by IP. Limiter failures let the request through.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				c.Logger().Warnf("rate limiter: %v", err)
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}
