package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nginlog/nginlog-go/internal/safefile"
	"github.com/nginlog/nginlog-go/pkg/nginlog"
)

var (
	// parse flags
	parseFormat      string
	parseFormatsFile string
	parseConf        string
	parseName        string
	parseOutput      string
	parseFields      []string
	parseStopOnError bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse access log files and output structured records",
	Long: `Parse access log files and output one structured record per line.

Reads from stdin when no files are given. Records are output as JSON Lines
by default (one JSON object per line), which makes it easy to process with
tools like jq.

Examples:
  # Parse with the builtin combined format
  nginlog parse access.log

  # Parse with an explicit format string
  nginlog parse --format '$remote_addr [$time_local] "$request" $status' access.log

  # Take the format from an nginx configuration
  nginlog parse --conf /etc/nginx/nginx.conf --name main access.log

  # Take the format from a YAML format definition file
  nginlog parse --formats formats.yaml --name main access.log

  # Keep only some fields and pipe to jq
  nginlog parse --fields remote_addr,status access.log | jq .status`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "",
		"Log format string (overrides other format sources)")
	parseCmd.Flags().StringVar(&parseFormatsFile, "formats", "",
		"YAML format definition file (requires --name)")
	parseCmd.Flags().StringVar(&parseConf, "conf", "",
		"Nginx configuration file (auto-detected if empty and --name is set)")
	parseCmd.Flags().StringVarP(&parseName, "name", "n", "",
		"Format name: builtin (combined, common), log_format name, or YAML entry")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "jsonl",
		"Output format: jsonl, pretty")
	parseCmd.Flags().StringSliceVar(&parseFields, "fields", nil,
		"Project records to these fields (comma-separated)")
	parseCmd.Flags().BoolVar(&parseStopOnError, "stop-on-error", false,
		"Stop at the first line that does not match instead of skipping")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !ValidOutputs[parseOutput] {
		return fmt.Errorf("unknown output format: %s", parseOutput)
	}

	format, err := resolveFormat(parseFormat, parseFormatsFile, parseConf, parseName)
	if err != nil {
		return err
	}

	parser, err := nginlog.NewParser(format)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return parseStream(cmd, parser, os.Stdin)
	}

	for _, path := range args {
		f, _, err := safefile.OpenRegular(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		err = parseStream(cmd, parser, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func parseStream(cmd *cobra.Command, parser *nginlog.Parser, input io.Reader) error {
	reader := nginlog.NewReaderWithParser(input, parser)
	out := cmd.OutOrStdout()

	for {
		entry, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if parseStopOnError {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			continue
		}

		if len(parseFields) > 0 {
			entry = entry.Partial(parseFields)
		}

		if err := OutputEntry(parseOutput, entry, out); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}
