package nginlog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// fieldToken matches a $field_name reference in a format string.
// Field names are one or more word characters; there is no escape for a
// literal dollar sign.
var fieldToken = regexp.MustCompile(`\$(\w+)`)

// StringParser is the interface for parsing log lines into entries.
// Implementations include Parser (format-string based) and custom parsers.
type StringParser interface {
	// ParseString parses a single log line into an Entry.
	// Returns an error if the line does not match the expected shape.
	ParseString(line string) (*Entry, error)
}

// Parser converts nginx-style log format strings into compiled matchers.
//
// Format strings use `$field_name` syntax to define extractable fields,
// e.g. `$remote_addr [$time_local] "$request" $status`. The compiled
// matcher is anchored to the whole line and carries one capture per field.
//
// Parser is immutable after construction and safe for concurrent use by
// multiple goroutines.
type Parser struct {
	format string
	re     *regexp.Regexp
	fields []string // capture group i+1 -> field name
}

// NewParser compiles a format string into a Parser.
//
// Returns an *InvalidFormatError if the synthesized pattern is rejected by
// the regexp engine. An empty format string is valid and matches only the
// empty line.
func NewParser(format string) (*Parser, error) {
	pattern, fields := formatToPattern(format)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidFormatError{Format: format, Cause: err}
	}
	return &Parser{format: format, re: re, fields: fields}, nil
}

// Format returns the original format string.
func (p *Parser) Format() string {
	return p.format
}

// Fields returns the field names in template order. Duplicate names appear
// once per occurrence.
func (p *Parser) Fields() []string {
	out := make([]string, len(p.fields))
	copy(out, p.fields)
	return out
}

// ParseString implements the StringParser interface.
//
// The whole line must match the format; a line that merely contains the
// pattern as a substring is a mismatch. A capture that matched zero
// characters yields an empty-string field value, not an absent field.
// Duplicate field names in the format overwrite each other, last
// occurrence wins.
func (p *Parser) ParseString(line string) (*Entry, error) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return nil, &LineFormatMismatchError{Line: line, Format: p.format}
	}

	fields := make(Fields, len(p.fields))
	for i, name := range p.fields {
		fields[name] = m[i+1]
	}
	return NewEntryFromFields(fields), nil
}

// formatToPattern converts a format string into an anchored regexp pattern
// with one unnamed capture per field reference, plus the field names in
// capture order.
//
// Captures are positional rather than named groups so that a format may
// reference the same field twice; named groups would reject the duplicate
// at compile time.
func formatToPattern(format string) (string, []string) {
	tokens := fieldToken.FindAllStringSubmatchIndex(format, -1)
	fields := make([]string, 0, len(tokens))

	var b strings.Builder
	b.WriteString("^")

	last := 0
	for i, tok := range tokens {
		start, end := tok[0], tok[1]
		name := format[tok[2]:tok[3]]

		// Literal text before this field, escaped so metacharacters in the
		// log format (brackets, quotes, dots) match literally.
		b.WriteString(regexp.QuoteMeta(format[last:start]))

		adjacent := i+1 < len(tokens) && tokens[i+1][0] == end
		delim := delimiterAfter(format, tokens, i, adjacent)

		switch {
		case adjacent && name == "host":
			// No delimiter separates the pair; hosts have a known shape.
			b.WriteString(`([a-zA-Z0-9.-]+)`)
		case delim == "":
			// Nothing follows on the line; capture the rest greedily.
			b.WriteString(`(.*)`)
		case adjacent:
			// Non-greedy so the adjacent field keeps its share, bounded by
			// the next real delimiter.
			b.WriteString(`([^` + regexp.QuoteMeta(delim) + `]*?)`)
		default:
			b.WriteString(`([^` + regexp.QuoteMeta(delim) + `]*)`)
		}

		fields = append(fields, name)
		last = end
	}

	b.WriteString(regexp.QuoteMeta(format[last:]))
	b.WriteString("$")
	return b.String(), fields
}

// delimiterAfter returns the delimiter character for the field at token
// index i: the first character that follows it in the format. For an
// adjacent pair the next field token is skipped first, so the delimiter is
// whatever follows the second field. Returns "" when the field runs to the
// end of the template.
func delimiterAfter(format string, tokens [][]int, i int, adjacent bool) string {
	end := tokens[i][1]
	if adjacent {
		end = tokens[i+1][1]
	}
	if end >= len(format) {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(format[end:])
	return string(r)
}
