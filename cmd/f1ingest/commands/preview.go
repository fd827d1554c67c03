package commands

import (
	"errors"

	"f1ingest/internal/normalize"

	"github.com/spf13/cobra"
)

func newPreviewCmd(root *rootFlags) *cobra.Command {
	var year int
	var endpoint string
	var baseUrl string
	var dump string

	cmd := &cobra.Command{
		Use:   "preview --year <year> --endpoint <name>",
		Short: "Downloads and normalizes a single season of an endpoint and prints it, nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year <= 0 {
				return errors.New("--year is required")
			}
			cfg, err := loadConfig(fs, root.config)
			if err != nil {
				return err
			}
			if baseUrl != "" {
				cfg.BaseUrl = baseUrl
			}

			client, err := newClient(cfg, dump)
			if err != nil {
				return err
			}
			pages, err := client.FetchPages(cmd.Context(), year, endpoint)
			if err != nil {
				return err
			}
			frame, err := normalize.NormalizePages(pages, endpoint)
			if err != nil {
				return err
			}
			renderFrame(cmd.OutOrStdout(), frame)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "The season to download.")
	cmd.Flags().StringVar(&endpoint, "endpoint", "races", "The endpoint to download.")
	cmd.Flags().StringVar(&baseUrl, "base-url", "", "The API root, overrides base_url.")
	cmd.Flags().StringVar(&dump, "dump", "", "A directory to save every raw response to.")
	return cmd
}
