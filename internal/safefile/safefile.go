// Package safefile opens user-supplied paths (access logs, nginx
// configurations, format definition files) with non-regular files rejected.
package safefile

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets, and
// directories. Errors from OpenRegular wrap it together with the offending
// path; match with errors.Is.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens path for reading after verifying it names a regular
// file. Reading a FIFO would block forever and a device can return garbage,
// so both fail up front with ErrNotRegularFile. Symlinks are refused rather
// than followed, which keeps a hostile link in a log directory from steering
// the read somewhere else.
//
// The path is checked with Lstat before opening and the descriptor is
// stat-ed again afterwards, closing the window where the file is swapped
// between the check and the open. The caller owns closing the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	return f, info, nil
}
