package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tastytalk/admin-backend/pkg/logger"
)

// ContextLogger attaches the request id to the request context so handler logs carry it.
// It must run after echo's RequestID middleware.
func ContextLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if rid != "" {
				c.SetRequest(req.WithContext(log.WithRequestID(req.Context(), rid)))
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request. The request id comes from
// the context logger installed by ContextLogger.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zl := log.Zerolog(c.Request().Context())
			event := zl.Info()
			if v.Error != nil || v.Status >= 500 {
				event = zl.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
