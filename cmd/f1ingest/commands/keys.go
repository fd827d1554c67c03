package commands

import (
	"strings"

	"f1ingest/internal/normalize"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <endpoint>...",
		Short: "Prints the envelope keys the records of the endpoints given as positional arguments are read from.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Endpoint", "Table", "Records", "Path"})
			for _, endpoint := range args {
				keys := normalize.DeriveKeys(endpoint)
				t.AppendRow(table.Row{
					endpoint,
					keys.TableContainer,
					keys.RecordArray,
					strings.Join(keys.Path(), " > "),
				})
			}
			t.Render()
		},
	}
}
