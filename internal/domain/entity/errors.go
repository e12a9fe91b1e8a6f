package entity

import "fmt"

// Error codes attached to normalized APIError values
const (
	CodeNetwork      = "network_error"
	CodeNotFound     = "not_found"
	CodeUploadFailed = "upload_failed"
	CodeValidation   = "validation_error"
)

// APIError is the normalized shape every access-layer failure is reduced to
// before it reaches a caller. Status is the HTTP status when one was received;
// Fields carries per-field messages for validation failures.
type APIError struct {
	Message string            `json:"message"`
	Status  int               `json:"status,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// NewNotFoundError reports a point lookup that returned no rows
func NewNotFoundError(id string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("claim with ID %s not found", id),
		Code:    CodeNotFound,
	}
}

// NewUploadFailedError reports a non-success response from object storage
func NewUploadFailedError(status int) *APIError {
	return &APIError{
		Message: "failed to upload file",
		Status:  status,
		Code:    CodeUploadFailed,
	}
}

// NewValidationError reports rejected input with per-field messages
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{
		Message: "invalid claim input",
		Code:    CodeValidation,
		Fields:  fields,
	}
}
