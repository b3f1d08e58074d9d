package errors

import "fmt"

// ErrorBuilder assembles an InternalError fluently. Mark finalizes the
// build and classifies the error under one of the package sentinels.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error with the given internal message
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{message: message},
	}
}

// NewErrorf starts building an error with a formatted internal message
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error that wraps an underlying cause
func WithError(cause error) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{cause: cause},
	}
}

// WithMessage sets the internal message on a wrapping builder
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	b.err.message = message
	return b
}

// WithHint attaches a safe, user-facing hint
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-facing hint
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details safe to expose in API
// responses
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.reportableDetails = details
	return b
}

// Mark classifies the error and returns it
func (b *ErrorBuilder) Mark(mark error) error {
	b.err.mark = mark
	return b.err
}
