package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"

	"tabular-qa-be/internal/pkg/apperror"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperror.Validation("bad input"), fiber.StatusBadRequest},
		{"conflict", apperror.Conflict("duplicate"), fiber.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized("no"), fiber.StatusUnauthorized},
		{"not found", apperror.NotFound("gone"), fiber.StatusNotFound},
		{"upstream", apperror.Upstream("boom", errors.New("x")), fiber.StatusInternalServerError},
		{"upstream timeout", apperror.UpstreamTimeout("slow", errors.New("x")), fiber.StatusGatewayTimeout},
		{"fiber unmatched route", fiber.ErrNotFound, fiber.StatusNotFound},
		{"fiber method not allowed", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"fiber body too large", fiber.ErrRequestEntityTooLarge, fiber.StatusRequestEntityTooLarge},
		{"plain error", errors.New("anything"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
