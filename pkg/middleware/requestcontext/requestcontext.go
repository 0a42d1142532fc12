// Package requestcontext moves per-request values from fiber into the request's context.Context.
package requestcontext

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// Option extracts one value from the request into ctx.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

// rejectError stops the request with status and message.
type rejectError struct {
	status  int
	message string
}

func (r rejectError) Error() string {
	return r.message
}

func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		ctx := c.UserContext()
		for i, opt := range opts {
			ctx, err = opt(ctx, c)
			if err == nil {
				continue
			}
			if rErr := (rejectError{}); errors.As(err, &rErr) {
				return errors.WithStack(c.Status(rErr.status).JSON(fiber.Map{"error": rErr.message}))
			}
			logger.ErrorContext(ctx, "Failed to extract request context", err,
				slogx.String("event", "requestcontext/error"),
				slogx.Int("optionIndex", i),
			)
			return errors.WithStack(c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"}))
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
