package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tabular-qa-be/internal/pkg/apperror"
)

// ErrorHandlerMiddleware maps error kinds to HTTP statuses in one place so
// no endpoint invents its own mapping.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := statusForError(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			// Internal details stay in the logs.
			message = "Internal server error"
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

func statusForError(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return statusForKind(appErr.Kind)
	}

	// Fiber's own errors (unmatched route, method not allowed, body over
	// the transport limit) already carry the right status.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	return fiber.StatusInternalServerError
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindUpstream:
		return fiber.StatusInternalServerError
	case apperror.KindUpstreamTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
