package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nginlog/nginlog-go/pkg/nginlog"
)

// ValidOutputs lists all valid output formats.
var ValidOutputs = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputEntry writes an entry in the specified output format to the writer.
func OutputEntry(output string, entry *nginlog.Entry, out io.Writer) error {
	switch output {
	case "jsonl":
		return OutputJSON(entry, out)
	case "pretty":
		return OutputPretty(entry, out)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

// OutputJSON writes an entry as one JSON object per line.
func OutputJSON(entry *nginlog.Entry, out io.Writer) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an entry as sorted key=value pairs on one line.
func OutputPretty(entry *nginlog.Entry, out io.Writer) error {
	fields := entry.Fields()

	// Sort keys for deterministic output
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, quoteIfNeeded(fields[k])))
	}
	_, err := fmt.Fprintln(out, strings.Join(parts, " "))
	return err
}

// quoteIfNeeded quotes a value if it contains special characters or control
// characters. Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			sb.WriteString(fmt.Sprintf(`\x%02x`, c))
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
