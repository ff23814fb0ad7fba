package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nginlog/nginlog-go/pkg/nginlog"
)

var (
	// follow flags
	followFormat      string
	followFormatsFile string
	followConf        string
	followName        string
	followOutput      string
	followFields      []string
	followFromStart   bool
	followPoll        bool
	followVerbose     bool
)

var followCmd = &cobra.Command{
	Use:   "follow <file>",
	Short: "Follow an access log and output records as lines arrive",
	Long: `Follow an access log file (like tail -f) and output one structured
record per new line. Survives log rotation.

Examples:
  # Follow with the builtin combined format
  nginlog follow /var/log/nginx/access.log

  # Follow from the start of the file
  nginlog follow --from-start access.log

  # Take the format from the local nginx configuration
  nginlog follow --name main /var/log/nginx/access.log`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

func init() {
	followCmd.Flags().StringVarP(&followFormat, "format", "f", "",
		"Log format string (overrides other format sources)")
	followCmd.Flags().StringVar(&followFormatsFile, "formats", "",
		"YAML format definition file (requires --name)")
	followCmd.Flags().StringVar(&followConf, "conf", "",
		"Nginx configuration file (auto-detected if empty and --name is set)")
	followCmd.Flags().StringVarP(&followName, "name", "n", "",
		"Format name: builtin (combined, common), log_format name, or YAML entry")
	followCmd.Flags().StringVarP(&followOutput, "output", "o", "jsonl",
		"Output format: jsonl, pretty")
	followCmd.Flags().StringSliceVar(&followFields, "fields", nil,
		"Project records to these fields (comma-separated)")
	followCmd.Flags().BoolVar(&followFromStart, "from-start", false,
		"Read the whole file before following new lines")
	followCmd.Flags().BoolVar(&followPoll, "poll", false,
		"Poll the filesystem instead of using inotify")
	followCmd.Flags().BoolVarP(&followVerbose, "verbose", "v", false,
		"Print per-line parse warnings to stderr")

	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	if !ValidOutputs[followOutput] {
		return fmt.Errorf("unknown output format: %s", followOutput)
	}

	format, err := resolveFormat(followFormat, followFormatsFile, followConf, followName)
	if err != nil {
		return err
	}

	parser, err := nginlog.NewParser(format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []nginlog.FollowOption
	if followFromStart {
		opts = append(opts, nginlog.WithFromStart())
	}
	if followPoll {
		opts = append(opts, nginlog.WithPoll(true))
	}

	entries, errs, err := nginlog.Follow(ctx, args[0], parser, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return nil
			}
			if len(followFields) > 0 {
				entry = entry.Partial(followFields)
			}
			if err := OutputEntry(followOutput, entry, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if followVerbose {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}

		case <-ctx.Done():
			return nil
		}
	}
}
