package domain

import "fmt"

// ValidationError names the request field that failed validation so API
// clients can surface the message next to the right input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
