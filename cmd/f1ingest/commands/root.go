package commands

import (
	"context"
	"log/slog"

	"f1ingest/lib/telemetry"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fs is swapped for an in memory file system in tests.
var fs afero.Fs = afero.NewOsFs()

type rootFlags struct {
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "f1ingest",
		Short:         "f1ingest downloads Ergast season data and appends it to csv datasets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.InitSlogTo(cmd.ErrOrStderr(), flags.verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", DefaultConfigFile, "The config file to read.")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enables debug logs.")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newPreviewCmd(flags),
		newNormalizeCmd(),
		newKeysCmd(),
	)
	return rootCmd
}

// ExecuteContext runs the command line and returns the exit code.
func ExecuteContext(ctx context.Context) int {
	return execute(ctx, newRootCmd())
}

func execute(ctx context.Context, rootCmd *cobra.Command) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "err", err)
		return 1
	}
	return 0
}
