package errors

// ErrorResponse is the JSON shape errors render to over HTTP
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail holds the user-facing message and any reportable details
type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds the HTTP body for an error, preferring the hint
// over the internal message.
func NewErrorResponse(err error) *ErrorResponse {
	message := err.Error()
	if hint := Hint(err); hint != "" {
		message = hint
	}
	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: message,
			Details: ReportableDetails(err),
		},
	}
}
