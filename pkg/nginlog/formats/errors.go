package formats

import "fmt"

// ValidationError represents a schema-level validation error.
// These errors occur when a format file violates structural requirements
// (e.g., missing required fields, invalid version number).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// FormatError represents an error specific to an individual format
// definition (e.g., missing name, duplicate name, oversized format string).
type FormatError struct {
	Index   int    // 0-based index of the format in the file
	Name    string // Format name (may be empty if the name field is missing)
	Field   string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("format %q: %s: %s", e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("format[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
// This enables errors.Is() and errors.As() to work with FormatError.
func (e *FormatError) Unwrap() error {
	return e.Cause
}
