package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used to mark error categories. Callers classify errors
// with errors.Is against these via the predicates below, never by string
// matching.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrDatabase         = errors.New("database_error")
	ErrInternal         = errors.New("internal_error")
)

// InternalError is the concrete error type produced by this package. It
// carries a category mark, an optional wrapped cause, a safe user-facing
// hint and structured details for API responses.
type InternalError struct {
	mark              error
	cause             error
	message           string
	hint              string
	reportableDetails map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		if e.message != "" {
			return e.message + ": " + e.cause.Error()
		}
		return e.cause.Error()
	}
	return e.message
}

func (e *InternalError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.mark
}

// Is lets errors.Is match both the category mark and the wrapped cause.
func (e *InternalError) Is(target error) bool {
	if e.mark == target {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Hint returns the user-facing hint attached to an error, if any
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.hint
	}
	return ""
}

// ReportableDetails returns the structured details attached to an error
func ReportableDetails(err error) map[string]interface{} {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.reportableDetails
	}
	return nil
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}
