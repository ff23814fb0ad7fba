// Command nginlog parses nginx-style access logs into structured records.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "nginlog",
	Short: "Parse nginx access logs into structured records",
	Long: `nginlog parses nginx-style access logs into structured records.

Log formats are described with nginx $field_name templates, taken from a
format string, an nginx configuration file, a YAML format definition file,
or one of the builtin formats (combined, common).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
