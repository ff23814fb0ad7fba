package main

import (
	"fmt"

	"github.com/nginlog/nginlog-go/internal/conffinder"
	"github.com/nginlog/nginlog-go/internal/safefile"
	"github.com/nginlog/nginlog-go/pkg/nginlog"
	"github.com/nginlog/nginlog-go/pkg/nginlog/formats"
)

// resolveFormat determines the log format string from the flag sources, in
// priority order:
//
//  1. formatStr: a literal $field_name template
//  2. formatsPath: a YAML format definition file, looked up by name
//  3. name matching a builtin format (combined, common)
//  4. an nginx configuration (confPath, NGINLOG_CONF, or well-known
//     locations), scanned for log_format <name>
//
// With no flags at all, the builtin "combined" format is used.
func resolveFormat(formatStr, formatsPath, confPath, name string) (string, error) {
	if formatStr != "" {
		return formatStr, nil
	}

	if formatsPath != "" {
		if name == "" {
			return "", fmt.Errorf("--name is required with --formats")
		}
		file, err := formats.Load(formatsPath)
		if err != nil {
			return "", err
		}
		return file.Lookup(name)
	}

	if name == "" {
		if confPath == "" {
			return formats.Builtin("combined")
		}
		return "", fmt.Errorf("--name is required with --conf")
	}

	if confPath == "" {
		if format, err := formats.Builtin(name); err == nil {
			return format, nil
		}
	}

	resolved, err := conffinder.FindConf(confPath)
	if err != nil {
		return "", err
	}

	f, _, err := safefile.OpenRegular(resolved)
	if err != nil {
		return "", fmt.Errorf("open nginx configuration: %w", err)
	}
	defer f.Close()

	return nginlog.ExtractFormat(f, name)
}
