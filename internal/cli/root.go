// Package cli wires the seqmix commands: optimize turns a track list
// into an ordered playlist, keys prints harmonic neighbours of a key.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the seqmix root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seqmix",
		Short: "seqmix - harmonic playlist sequencing",
		Long: `seqmix orders a set of tracks into a playlist that maximizes length
while keeping consecutive tracks mixable: compatible tempo, harmonically
close keys on the Camelot wheel, and non-decreasing energy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewOptimizeCommand(opts))
	cmd.AddCommand(NewKeysCommand(opts))

	return cmd
}

// configureLogging installs the process-wide text logger on stderr so
// stdout stays clean for result output.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
