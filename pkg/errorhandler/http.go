package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// StatusCode returns the http status of err and the message safe to show to the client.
func StatusCode(err error) (int, string) {
	if e := new(errs.PublicError); errors.As(err, &e) {
		return http.StatusBadRequest, e.Message()
	}
	if e := new(fiber.Error); errors.As(err, &e) {
		return e.Code, e.Message
	}
	switch {
	case errors.Is(err, errs.NotAuthorized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.NotFound):
		return http.StatusNotFound, err.Error()
	case errs.IsRejection(err):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := StatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
				slogx.String("event", "api_unhandled_error"),
			)
		}
		return errors.WithStack(ctx.Status(status).JSON(fiber.Map{
			"error": message,
		}))
	}
}
