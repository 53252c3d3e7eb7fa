package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tabular-qa-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest checks struct `validate` tags and returns a validation
// error listing the offending fields.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation("invalid request body")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperror.Validation("invalid request: " + strings.Join(fields, ", "))
}
