package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mverstraete/mp4merge/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	rootCmd := &cobra.Command{
		Use:   "mp4merge",
		Short: "Sequential video file merger",
		Long: `mp4merge concatenates video files into a single output file in the
order they are given, reporting per-file progress along the way.
Inputs must share the same encoding for the result to be playable.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewMergeCommand())
	rootCmd.AddCommand(cli.NewInfoCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
