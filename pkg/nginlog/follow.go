package nginlog

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"
)

// followErrBuffer is the buffer size for the error channel.
// A small buffer prevents error loss during brief moments when the consumer
// is busy processing entries, while keeping memory usage minimal.
const followErrBuffer = 16

// FollowOption configures Follow behavior using the functional options pattern.
type FollowOption func(*followConfig)

// followConfig holds internal configuration for following a log file.
type followConfig struct {
	fromStart bool
	poll      bool
	reopen    bool
	logger    *slog.Logger
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultFollowConfig returns a followConfig with sensible defaults.
func defaultFollowConfig() *followConfig {
	return &followConfig{
		reopen: true,
		logger: discardLogger,
	}
}

// WithFromStart reads the file from the beginning instead of starting at the
// current end (tail -f behavior is the default).
func WithFromStart() FollowOption {
	return func(c *followConfig) {
		c.fromStart = true
	}
}

// WithPoll uses filesystem polling instead of inotify to detect new lines.
// Useful on network filesystems where inotify events are unreliable.
func WithPoll(poll bool) FollowOption {
	return func(c *followConfig) {
		c.poll = poll
	}
}

// WithReopen controls whether a rotated or truncated file is reopened.
// Default: true (follow across logrotate).
func WithReopen(reopen bool) FollowOption {
	return func(c *followConfig) {
		c.reopen = reopen
	}
}

// WithLogger sets a custom logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) FollowOption {
	return func(c *followConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Follow tails a log file and parses new lines as they are appended.
//
// Entries are delivered on the first channel; per-line parse failures and
// tail errors are delivered on the second, buffered, channel and do not stop
// the tail. When the error buffer is full, further errors are dropped rather
// than blocking entry delivery. Both channels close when ctx is cancelled or
// the underlying tail ends. Follow returns an error immediately if the file
// cannot be opened.
//
// Example:
//
//	parser, _ := nginlog.NewParser(format)
//	entries, errs, err := nginlog.Follow(ctx, "/var/log/nginx/access.log", parser)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for entry := range entries {
//	    // process entry
//	}
func Follow(ctx context.Context, path string, parser StringParser, opts ...FollowOption) (<-chan *Entry, <-chan error, error) {
	cfg := defaultFollowConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	tailCfg := tail.Config{
		Follow:    true,
		ReOpen:    cfg.reopen,
		MustExist: true,
		Poll:      cfg.poll,
		Logger:    tail.DiscardingLogger,
	}
	if !cfg.fromStart {
		tailCfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, tailCfg)
	if err != nil {
		return nil, nil, err
	}

	cfg.logger.Debug("following log file", "path", path, "from_start", cfg.fromStart)

	entryCh := make(chan *Entry)
	errCh := make(chan error, followErrBuffer)

	go func() {
		defer close(entryCh)
		defer close(errCh)
		defer t.Cleanup()

		for {
			select {
			case <-ctx.Done():
				_ = t.Stop()
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				if line.Err != nil {
					sendError(ctx, errCh, line.Err)
					continue
				}

				text := strings.TrimRight(line.Text, "\r")
				if strings.TrimSpace(text) == "" {
					continue
				}

				entry, err := parser.ParseString(text)
				if err != nil {
					cfg.logger.Debug("line did not parse", "error", err)
					sendError(ctx, errCh, err)
					continue
				}

				select {
				case entryCh <- entry:
				case <-ctx.Done():
					_ = t.Stop()
					return
				}
			}
		}
	}()

	return entryCh, errCh, nil
}

// sendError delivers err on the buffered error channel. An error is dropped
// when the buffer is full so a consumer that only reads entries never stalls
// the tail. The context case avoids blocking during shutdown.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}
