package commands

import (
	"fmt"
	"log/slog"

	"f1ingest/internal/csvsink"
	"f1ingest/internal/normalize"
	"f1ingest/internal/telemetry"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var endpoint string
	var out string

	cmd := &cobra.Command{
		Use:   "normalize <response.json>... --endpoint <name> [--out <file.csv>]",
		Short: "Normalizes saved API responses, the files are treated as the pages of one response.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages := make([][]byte, len(args))
			for i, path := range args {
				contents, err := afero.ReadFile(fs, path)
				if err != nil {
					return err
				}
				pages[i] = contents
			}

			frame, err := normalize.NormalizePages(pages, endpoint)
			if err != nil {
				return err
			}

			if out == "" {
				renderFrame(cmd.OutOrStdout(), frame)
				return nil
			}
			rows, err := csvsink.New(fs, telemetry.SlogAPI{}).Append(frame, out)
			if err != nil {
				return fmt.Errorf("append: %w", err)
			}
			slog.Info("appended rows", "rows", rows, "path", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "The endpoint the responses were fetched from.")
	cmd.Flags().StringVar(&out, "out", "", "A csv file to append the rows to instead of printing them.")
	_ = cmd.MarkFlagRequired("endpoint")
	return cmd
}
