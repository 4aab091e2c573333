package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// RequestLogger puts a request scoped logger into the request context and writes
// one line per request. Handler errors are rendered here so the logged status is final.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				slog.String("method", req.Method),
				slog.String("route", c.Path()),
				slog.String("uri", req.URL.Path),
				slog.String("remote_ip", c.RealIP()),
			)
			if rid := requestID(c); rid != "" {
				l = l.With(slog.String("request_id", rid))
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			res := c.Response()
			attrs := []slog.Attr{
				slog.Int("status", res.Status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.Int64("bytes_out", res.Size),
			}
			lvl := levelFor(res.Status)
			if err != nil && lvl == slog.LevelError {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			l.LogAttrs(c.Request().Context(), lvl, "request completed", attrs...)
			return nil
		}
	}
}
