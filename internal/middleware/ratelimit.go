package middleware

import (
	"log"
	"time"

	"gigmarket/internal/caching"
	"gigmarket/internal/common"

	"github.com/labstack/echo/v4"
)

// RateLimit caps calls per caller within window. Callers are keyed by identity subject, or by IP when anonymous.
// A cache failure lets the request through.
func RateLimit(cache caching.CacheService, scope string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}
			caller := "ip:" + c.RealIP()
			if identity, ok := common.IdentityFromContext(c.Request().Context()); ok {
				caller = "sub:" + identity.Subject
			}

			limited, err := cache.IsRateLimited(c.Request().Context(), scope+":"+caller, limit, window)
			if err != nil {
				log.Printf("WARN: rate limit check for %s failed: %v", scope, err)
				return next(c)
			}
			if limited {
				return common.SendTooManyRequestsError(c)
			}
			return next(c)
		}
	}
}
