package apierrors

import "strings"

// APIError is an error carrying an HTTP status and machine-readable codes.
type APIError struct {
	Status int
	Codes  []string
}

func (e *APIError) Error() string {
	return strings.Join(e.Codes, ",")
}

func NewAPIError(status int, codes ...string) *APIError {
	return &APIError{Status: status, Codes: codes}
}
