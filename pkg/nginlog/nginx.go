package nginlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// NewNginxReader creates a Reader for a log stream whose format is defined
// by a log_format directive in an nginx configuration.
//
// The configuration is scanned for the named directive, the format string is
// reassembled, compiled, and used to parse the log input.
//
// Example:
//
//	conf := strings.NewReader(`
//	log_format main '$remote_addr - $remote_user [$time_local] "$request" '
//	                '$status $body_bytes_sent';
//	`)
//	reader, err := nginlog.NewNginxReader(logFile, conf, "main")
func NewNginxReader(logInput io.Reader, nginxConfig io.Reader, formatName string) (*Reader, error) {
	format, err := ExtractFormat(nginxConfig, formatName)
	if err != nil {
		return nil, err
	}
	return NewReader(logInput, format)
}

// ExtractFormat scans an nginx configuration for a log_format directive with
// the given name and reassembles its format string.
//
// Directive bodies may span multiple physical lines:
//
//	log_format main '$remote_addr - $remote_user [$time_local] "$request" '
//	                '$status $body_bytes_sent "$http_referer"';
//
// Each fragment has one surrounding quote layer stripped, fragments are
// joined with single spaces, and whitespace runs are collapsed. Blank lines
// and comment lines are ignored. The directive ends at a fragment with a
// trailing semicolon once braces (outside quoted spans) are balanced, so a
// terminator inside a brace-nested value does not end it early.
//
// Returns a *FormatNotFoundError if the directive is absent, and a
// *ConfigParseError if the input ends inside an unbalanced directive body.
func ExtractFormat(nginxConfig io.Reader, formatName string) (string, error) {
	directive, err := regexp.Compile(
		`^\s*log_format\s+` + regexp.QuoteMeta(formatName) + `\s+(.+)`)
	if err != nil {
		return "", &ConfigParseError{Message: fmt.Sprintf("bad format name %q: %v", formatName, err)}
	}

	scanner := bufio.NewScanner(nginxConfig)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var fragments []string
	inFormat := false
	braceDepth := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inFormat {
			m := directive.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			fragment := m[1]
			fragments = append(fragments, fragment)
			inFormat = true
			braceDepth += braceBalance(fragment)
			if strings.HasSuffix(strings.TrimRight(fragment, " \t"), ";") && braceDepth == 0 {
				inFormat = false
				break
			}
			continue
		}

		fragments = append(fragments, line)
		braceDepth += braceBalance(line)
		if strings.HasSuffix(line, ";") && braceDepth == 0 {
			inFormat = false
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read nginx configuration: %w", err)
	}

	if len(fragments) == 0 {
		return "", &FormatNotFoundError{Name: formatName}
	}
	if inFormat && braceDepth != 0 {
		return "", &ConfigParseError{
			Message: fmt.Sprintf("unterminated log_format %q: unbalanced braces at end of input", formatName),
		}
	}

	// Strip each fragment's own quote layer, then join and normalize.
	processed := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		fragment = strings.TrimSuffix(fragment, ";")
		processed = append(processed, stripSurroundingQuotes(fragment))
	}

	format := strings.Join(processed, " ")
	format = strings.TrimSuffix(format, ";")
	format = stripSurroundingQuotes(format)
	format = strings.Join(strings.Fields(format), " ")

	return format, nil
}

// braceBalance returns the net count of opening minus closing braces in s.
// Braces inside single- or double-quoted spans do not count, and a backslash
// escapes the following character so an escaped quote does not toggle quote
// state.
func braceBalance(s string) int {
	count := 0
	inQuotes := false
	escaped := false

	for _, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '"', '\'':
			inQuotes = !inQuotes
		case '{':
			if !inQuotes {
				count++
			}
		case '}':
			if !inQuotes {
				count--
			}
		}
	}
	return count
}

// stripSurroundingQuotes removes at most one layer of matching single or
// double quotes around s.
func stripSurroundingQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
