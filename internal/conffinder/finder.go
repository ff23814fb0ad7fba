// Package conffinder locates the nginx configuration file on the local
// system.
package conffinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfPath is the environment variable name for specifying the nginx
// configuration file path.
const EnvConfPath = "NGINLOG_CONF"

// ErrConfNotFound is returned when no nginx configuration file can be found.
var ErrConfNotFound = errors.New("nginx configuration file not found")

// DefaultConfPaths returns candidate nginx configuration paths in priority
// order, covering the common package-manager and source-install locations.
func DefaultConfPaths() []string {
	return []string{
		"/etc/nginx/nginx.conf",
		"/usr/local/nginx/conf/nginx.conf",
		"/usr/local/etc/nginx/nginx.conf",
		"/opt/homebrew/etc/nginx/nginx.conf",
	}
}

// FindConf returns the path to the nginx configuration file.
//
// Priority:
//  1. explicit (if non-empty)
//  2. NGINLOG_CONF environment variable
//  3. Auto-detect from DefaultConfPaths()
//
// Returns ErrConfNotFound if no readable configuration file is found.
// The returned path has symlinks resolved for consistency.
func FindConf(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateConf(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified path is not a readable file", ErrConfNotFound)
	}

	if envPath := os.Getenv(EnvConfPath); envPath != "" {
		if resolved := resolveAndValidateConf(envPath); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to an unreadable file", ErrConfNotFound, EnvConfPath)
	}

	for _, path := range DefaultConfPaths() {
		if resolved := resolveAndValidateConf(path); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrConfNotFound
}

// resolveAndValidateConf resolves symlinks and verifies the path is a
// regular file. Returns the resolved path if valid, empty string otherwise.
func resolveAndValidateConf(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return ""
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}

	return resolved
}
