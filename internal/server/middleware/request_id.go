package middleware

import (
	"github.com/nodegen/backend/internal/util"

	"github.com/labstack/echo/v4"
)

// TrustedRequestID drops client supplied X-Request-ID headers that do not look
// like our own ids, so a fresh one is generated further down the chain.
func TrustedRequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header
		if id := header.Get(echo.HeaderXRequestID); id != "" && !util.IsRequestID(id) {
			header.Del(echo.HeaderXRequestID)
		}
		return next(c)
	}
}

// RequestID returns the id assigned to the current request.
func RequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
