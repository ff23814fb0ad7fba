package nginlog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes is the maximum size of a single log line (1MB).
// Lines beyond this are a sign of corrupt input, not access logs.
const maxLineBytes = 1 * 1024 * 1024

// Reader parses a log stream line by line using a compiled format.
//
// Read returns entries one at a time; a mismatch on one line does not stop
// iteration, the caller decides whether to continue. Reader is not safe for
// concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	parser  StringParser
}

// NewReader creates a Reader over input using the given format string.
// Returns an error if the format string does not compile.
func NewReader(input io.Reader, format string) (*Reader, error) {
	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}
	return NewReaderWithParser(input, parser), nil
}

// NewReaderWithParser creates a Reader with a pre-built parser.
// This allows sharing one compiled parser across several inputs, or using a
// custom StringParser implementation.
func NewReaderWithParser(input io.Reader, parser StringParser) *Reader {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Reader{scanner: scanner, parser: parser}
}

// Read returns the next entry from the stream.
//
// Returns io.EOF when the input is exhausted. Blank lines are skipped.
// A *LineFormatMismatchError from one line leaves the Reader usable; the
// next Read call moves on to the following line.
func (r *Reader) Read() (*Entry, error) {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return r.parser.ParseString(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log line: %w", err)
	}
	return nil, io.EOF
}

// ReadAll collects every remaining entry into a slice.
//
// Fails fast: the first line that does not parse aborts the collection and
// its error is returned with no partial results. Use Read directly to skip
// bad lines instead.
func (r *Reader) ReadAll() ([]*Entry, error) {
	var entries []*Entry
	for {
		entry, err := r.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// Each calls fn for every remaining entry, stopping on the first parse
// error or the first error returned by fn. This avoids holding the whole
// file in memory.
func (r *Reader) Each(fn func(*Entry) error) error {
	for {
		entry, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
}
