package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTiming exposes a Server-Timing header collector on every request context.
func ServerTiming() echo.MiddlewareFunc {
	return echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return servertiming.Middleware(next, nil)
	})
}
