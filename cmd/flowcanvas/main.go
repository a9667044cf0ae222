// Flowcanvas CLI — run and validate workflow graphs from the command line.
//
// Usage:
//
//	flowcanvas [--json] <command> [flags]
//
// Commands:
//
//	validate  Check a graph file for structural problems
//	run       Execute a graph, optionally scoring it against a level
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/internal/cli"
	"github.com/flowcanvas/flowcanvas/observability/slogobs"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	// Optional: environment files configure LOG_LEVEL and LOG_FORMAT.
	_ = godotenv.Load()

	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "flowcanvas",
		Short:         "Flowcanvas — workflow graph execution engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	observer := slogobs.NewFromEnv()
	outputFn := func() *cli.Output { return cli.NewOutput(os.Stdout, jsonOutput) }

	rootCmd.AddCommand(
		cli.NewValidateCmd(outputFn),
		cli.NewRunCmd(observer, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
