package formats

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nginlog/nginlog-go/internal/safefile"
)

const (
	// MaxFileSize is the maximum allowed size for a format file (1MB).
	// This limit prevents denial-of-service via extremely large files.
	MaxFileSize = 1 * 1024 * 1024 // 1 MB

	// MaxFormatLength is the maximum allowed length for a format string
	// (4KB). Real nginx log_format definitions are a few hundred bytes.
	MaxFormatLength = 4 * 1024

	// MaxFormatCount is the maximum number of formats allowed in a file.
	MaxFormatCount = 1000

	// SupportedVersion is the currently supported format file version.
	SupportedVersion = 1
)

// Load reads and parses a format definition file from the given path.
// Returns an error if the file cannot be read, is too large, or fails
// validation.
//
// Non-regular files (FIFO, device, socket) are rejected, and the read is
// size-limited, so a hostile path cannot stall or exhaust the process.
//
// Example:
//
//	file, err := formats.Load("formats.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load format file: %v", err)
//	}
//	format, err := file.Lookup("main")
func Load(path string) (*File, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open format file: %w", err)
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, errors.New("format file is empty")
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("format file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	// Read MaxFileSize+1 to detect the file growing past the limit between
	// the stat and the read.
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read format file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("format file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses a format definition file from a byte slice.
// Returns an error if the data cannot be parsed or fails validation.
//
// Example:
//
//	data := []byte("version: 1\nformats:\n  - name: main\n    ...")
//	file, err := formats.LoadBytes(data)
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("format file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("format file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &file, nil
}

// Validate performs schema-level validation on the format file.
// It checks for:
//   - Supported version number
//   - At least one format
//   - Required fields (name, format)
//   - Unique format names
//   - Format string length limits
//
// Note: this function does NOT compile format strings. Compilation happens
// in File.NewParser or nginlog.NewParser to avoid duplicating work.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}

	if len(f.Formats) == 0 {
		return &ValidationError{
			Field:   "formats",
			Message: "at least one format is required",
		}
	}

	if len(f.Formats) > MaxFormatCount {
		return &ValidationError{
			Field:   "formats",
			Message: fmt.Sprintf("too many formats (%d), maximum allowed is %d", len(f.Formats), MaxFormatCount),
		}
	}

	seenNames := make(map[string]int, len(f.Formats))

	for i, def := range f.Formats {
		if def.Name == "" {
			return &FormatError{
				Index:   i,
				Field:   "name",
				Message: "name is required",
			}
		}
		if def.Format == "" {
			return &FormatError{
				Index:   i,
				Name:    def.Name,
				Field:   "format",
				Message: "format is required",
			}
		}

		if prevIndex, exists := seenNames[def.Name]; exists {
			return &FormatError{
				Index:   i,
				Name:    def.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (previously defined at format[%d])", prevIndex),
			}
		}
		seenNames[def.Name] = i

		if len(def.Format) > MaxFormatLength {
			return &FormatError{
				Index:   i,
				Name:    def.Name,
				Field:   "format",
				Message: fmt.Sprintf("format too long: %d bytes (max %d)", len(def.Format), MaxFormatLength),
			}
		}
	}

	return nil
}
