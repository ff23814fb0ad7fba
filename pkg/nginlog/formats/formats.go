// Package formats provides named log format definitions for nginlog.
// It allows users to keep format strings in YAML files instead of code,
// and ships the stock nginx formats as builtins.
package formats

import "github.com/nginlog/nginlog-go/pkg/nginlog"

// File represents the structure of a YAML format definition file.
//
// Example YAML file:
//
//	version: 1
//	formats:
//	  - name: main
//	    format: '$remote_addr - $remote_user [$time_local] "$request" $status'
//	  - name: upstream
//	    format: '$remote_addr $upstream_addr $upstream_response_time'
type File struct {
	// Version is the format file version. Currently only version 1 is supported.
	Version int `yaml:"version"`

	// Formats is the list of format definitions.
	Formats []Format `yaml:"formats"`
}

// Format represents a single named log format definition.
type Format struct {
	// Name identifies the format within the file (e.g., "main").
	// Names must be unique within a file.
	Name string `yaml:"name"`

	// Format is the nginx-style format string with $field_name references.
	Format string `yaml:"format"`
}

// Lookup returns the format string with the given name.
// Returns a *nginlog.FormatNotFoundError if no such format is defined.
func (f *File) Lookup(name string) (string, error) {
	for _, def := range f.Formats {
		if def.Name == name {
			return def.Format, nil
		}
	}
	return "", &nginlog.FormatNotFoundError{Name: name}
}

// NewParser is a convenience that looks up a named format and compiles it.
func (f *File) NewParser(name string) (*nginlog.Parser, error) {
	format, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	return nginlog.NewParser(format)
}
