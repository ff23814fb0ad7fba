package nginlog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fields is the underlying field storage for an Entry.
// All values are stored as strings, with type conversion on demand.
type Fields map[string]string

// Entry is a parsed log entry containing field name-value pairs.
//
// This is the primary data structure returned by parsing operations. All
// field values are stored as strings internally; typed accessors convert on
// read and never cache the result.
type Entry struct {
	fields Fields
}

// NewEntry creates a new empty entry.
func NewEntry() *Entry {
	return &Entry{fields: make(Fields)}
}

// NewEntryFromFields creates an entry that takes ownership of the given map.
func NewEntryFromFields(fields Fields) *Entry {
	if fields == nil {
		fields = make(Fields)
	}
	return &Entry{fields: fields}
}

// Field returns a field value as a string.
// Returns a *FieldNotFoundError if the field does not exist. An empty string
// value is a valid, present field and is not an error.
func (e *Entry) Field(name string) (string, error) {
	v, ok := e.fields[name]
	if !ok {
		return "", &FieldNotFoundError{Field: name}
	}
	return v, nil
}

// FloatField returns a field value converted to float64.
func (e *Entry) FloatField(name string) (float64, error) {
	v, err := e.Field(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &FieldParseError{Field: name, Value: v, TargetType: "float64", Cause: err}
	}
	return f, nil
}

// Int64Field returns a field value converted to int64.
func (e *Entry) Int64Field(name string) (int64, error) {
	v, err := e.Field(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &FieldParseError{Field: name, Value: v, TargetType: "int64", Cause: err}
	}
	return n, nil
}

// IntField returns a field value converted to int.
func (e *Entry) IntField(name string) (int, error) {
	v, err := e.Field(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &FieldParseError{Field: name, Value: v, TargetType: "int", Cause: err}
	}
	return n, nil
}

// SetField stores a string field value, replacing any existing value.
func (e *Entry) SetField(name, value string) {
	e.fields[name] = value
}

// SetFloatField stores a float value formatted with two decimal digits.
func (e *Entry) SetFloatField(name string, value float64) {
	e.fields[name] = fmt.Sprintf("%.2f", value)
}

// SetUintField stores an unsigned integer value in decimal form.
func (e *Entry) SetUintField(name string, value uint64) {
	e.fields[name] = strconv.FormatUint(value, 10)
}

// Merge copies all fields from other into this entry, overwriting existing
// fields on name collision.
func (e *Entry) Merge(other *Entry) {
	if other == nil {
		return
	}
	for k, v := range other.fields {
		e.fields[k] = v
	}
}

// FieldsHash builds a deterministic string over the given field names, in
// argument order, useful as a grouping key. Each field is rendered as
// 'name'=value; absent fields render as the literal NULL. Parts are joined
// with semicolons.
func (e *Entry) FieldsHash(names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		value, ok := e.fields[name]
		if !ok {
			value = "NULL"
		}
		parts = append(parts, fmt.Sprintf("'%s'=%s", name, value))
	}
	return strings.Join(parts, ";")
}

// Partial returns a new entry containing exactly the given field names.
// Names absent from this entry appear with an empty string value; a missing
// field is never an error here.
func (e *Entry) Partial(names []string) *Entry {
	fields := make(Fields, len(names))
	for _, name := range names {
		fields[name] = e.fields[name]
	}
	return NewEntryFromFields(fields)
}

// Fields returns a copy of the underlying field map.
func (e *Entry) Fields() Fields {
	out := make(Fields, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Len returns the number of fields in this entry.
func (e *Entry) Len() int {
	return len(e.fields)
}

// IsEmpty reports whether the entry has no fields.
func (e *Entry) IsEmpty() bool {
	return len(e.fields) == 0
}

// MarshalJSON encodes the entry as a flat JSON object of its fields.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.fields)
}

// UnmarshalJSON decodes a flat JSON object into the entry, replacing any
// existing fields.
func (e *Entry) UnmarshalJSON(data []byte) error {
	fields := make(Fields)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	e.fields = fields
	return nil
}
