package validator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/hometuition/hometuition/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest validates a request struct against its validate tags.
func ValidateRequest(req interface{}) error {
	if req == nil {
		return ierr.NewError("request cannot be nil").
			WithHint("Please provide a valid request").
			Mark(ierr.ErrValidation)
	}

	err := get().Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ierr.WithError(err).
			WithHint("Request validation failed").
			Mark(ierr.ErrValidation)
	}

	details := make(map[string]interface{}, len(validationErrors))
	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		fields = append(fields, field)
		details[field] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}

	return ierr.NewErrorf("invalid value for fields: %s", strings.Join(fields, ", ")).
		WithHint("Please check the request payload").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
