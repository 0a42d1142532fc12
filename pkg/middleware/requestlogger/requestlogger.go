package requestlogger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/pkg/errorhandler"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gaze-network/launchpad/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	WithRequestHeader    bool     `mapstructure:"request_header"`
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`

	// Disable drops successful request logs. Failed requests are always logged.
	Disable bool `mapstructure:"disable"`
}

func New(config Config) fiber.Handler {
	hidden := make(map[string]struct{}, len(config.HiddenRequestHeaders))
	for _, header := range config.HiddenRequestHeaders {
		hidden[strings.ToLower(strings.TrimSpace(header))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		// the app error handler has not written the response yet
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = errorhandler.StatusCode(err)
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		if config.Disable && level == slog.LevelInfo {
			return errors.WithStack(err)
		}

		request := []any{
			slogx.String("method", c.Method()),
			slogx.String("path", c.Path()),
			slogx.String("route", c.Route().Path),
			slogx.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slogx.String("userAgent", string(c.Context().UserAgent())),
			slogx.Any("params", c.AllParams()),
			slogx.Any("query", c.Queries()),
			slogx.Int("length", len(c.Body())),
		}
		if config.WithRequestHeader {
			headers := make([]any, 0)
			for k, v := range c.GetReqHeaders() {
				if _, ok := hidden[strings.ToLower(k)]; !ok {
					headers = append(headers, slogx.Any(k, v))
				}
			}
			request = append(request, slogx.Group("header", headers...))
		}

		attrs := []any{
			slogx.String("event", "api_request"),
			slogx.Duration("latency", latency),
			slogx.Group("request", request...),
			slogx.Group("response", slogx.Int("status", status), slogx.Int("length", len(c.Response().Body()))),
		}
		if err != nil {
			attrs = append(attrs, slogx.Error(err))
		}
		logger.LogContext(c.UserContext(), level, "Request Completed", attrs...)
		return errors.WithStack(err)
	}
}
