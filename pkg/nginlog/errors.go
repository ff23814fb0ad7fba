package nginlog

import "fmt"

// FieldNotFoundError is returned when a requested field is absent from an Entry.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found", e.Field)
}

// FieldParseError is returned when a field value cannot be converted to the
// requested numeric type.
type FieldParseError struct {
	Field      string
	Value      string
	TargetType string
	Cause      error // Underlying strconv error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("field %q with value %q cannot be parsed as %s: %v",
		e.Field, e.Value, e.TargetType, e.Cause)
}

// Unwrap returns the underlying cause of the error.
// This enables errors.Is() and errors.As() to work with FieldParseError.
func (e *FieldParseError) Unwrap() error {
	return e.Cause
}

// LineFormatMismatchError is returned when a log line does not match the
// parser's format. It carries the offending line and the original format
// string, not the compiled pattern.
type LineFormatMismatchError struct {
	Line   string
	Format string
}

func (e *LineFormatMismatchError) Error() string {
	return fmt.Sprintf("log line %q does not match format %q", e.Line, e.Format)
}

// InvalidFormatError is returned when a format string compiles to an unusable
// pattern. Well-formed format strings cannot trigger this; it guards against
// degenerate input reaching the regexp engine.
type InvalidFormatError struct {
	Format string
	Cause  error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format string %q: %v", e.Format, e.Cause)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Cause
}

// FormatNotFoundError is returned when a named log_format directive is absent
// from an nginx configuration, or a named format is absent from a format
// definition file.
type FormatNotFoundError struct {
	Name string
}

func (e *FormatNotFoundError) Error() string {
	return fmt.Sprintf("log format %q not found", e.Name)
}

// ConfigParseError is returned when malformed configuration structure is
// encountered while scanning for a log_format directive.
type ConfigParseError struct {
	Message string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("failed to parse nginx configuration: %s", e.Message)
}
