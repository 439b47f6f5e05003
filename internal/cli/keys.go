package cli

import (
	"github.com/spf13/cobra"

	"github.com/mixkraft/seqmix/camelot"
)

// KeysOptions holds flags for the keys command.
type KeysOptions struct {
	*RootOptions
	Level string
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys <key>",
		Short: "List harmonically compatible keys",
		Long: `List the Camelot keys a track in the given key can transition to
without a harmonic violation at the chosen strictness level.

Example:
  seqmix keys 8A
  seqmix keys 8A --harmonic-level relaxed`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Level, "harmonic-level", "strict", "harmonic compatibility level (strict|moderate|relaxed)")

	return cmd
}

func runKeys(cmd *cobra.Command, opts *KeysOptions, keyArg string) error {
	key, err := camelot.ParseKey(keyArg)
	if err != nil {
		return err
	}
	level, err := camelot.ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	cmd.Println(renderKeys(key, level, camelot.CompatibleKeys(key, level)))

	return nil
}
