package commands

import (
	"f1ingest/internal/csvsink"
	"f1ingest/internal/ingest"
	"f1ingest/internal/telemetry"

	"github.com/spf13/cobra"
)

type runFlags struct {
	from      int
	to        int
	endpoints []string
	out       string
	baseUrl   string
	dump      string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [--from <year>] [--to <year>] [--endpoint <name>]... [--out <dir>]",
		Short: "Downloads every configured endpoint for every season and appends it to the csv datasets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, root.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") {
				cfg.StartYear = flags.from
			}
			if cmd.Flags().Changed("to") {
				cfg.EndYear = flags.to
			}
			if cmd.Flags().Changed("endpoint") {
				cfg.Endpoints = flags.endpoints
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = flags.out
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseUrl = flags.baseUrl
			}

			client, err := newClient(cfg, flags.dump)
			if err != nil {
				return err
			}
			driver := ingest.Driver{
				Fetcher: client,
				Sink:    csvsink.New(fs, telemetry.SlogAPI{}),
				Tel:     telemetry.SlogAPI{},
			}

			summary, err := driver.Run(cmd.Context(), cfg.Plan())
			if len(summary.Endpoints) > 0 {
				renderSummary(cmd.OutOrStdout(), summary)
			}
			return err
		},
	}
	cmd.Flags().IntVar(&flags.from, "from", 0, "The first season to download, overrides start_year.")
	cmd.Flags().IntVar(&flags.to, "to", 0, "The last season to download, overrides end_year.")
	cmd.Flags().StringArrayVar(&flags.endpoints, "endpoint", nil, "An endpoint to download, overrides endpoints. Can be repeated.")
	cmd.Flags().StringVar(&flags.out, "out", "", "The directory the datasets are written to, overrides output_dir.")
	cmd.Flags().StringVar(&flags.baseUrl, "base-url", "", "The API root, overrides base_url.")
	cmd.Flags().StringVar(&flags.dump, "dump", "", "A directory to save every raw response to.")
	return cmd
}
