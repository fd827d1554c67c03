package commands

import (
	"fmt"
	"io"
	"strings"

	"f1ingest/internal/ingest"
	"f1ingest/internal/normalize"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	// column names are data, keep their case
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetOutputMirror(w)
	return t
}

func renderFrame(w io.Writer, frame *normalize.Frame) {
	t := newTable(w)

	header := table.Row{}
	for _, name := range frame.Columns() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, record := range frame.Records() {
		row := make(table.Row, len(record))
		for i, value := range record {
			row[i] = value
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", frame.Len())})
	t.Render()
}

func renderSummary(w io.Writer, summary ingest.Summary) {
	t := newTable(w)
	t.SetTitle("run " + summary.RunId)
	t.AppendHeader(table.Row{"Endpoint", "Years", "Rows", "Empty years", "Output"})
	for _, e := range summary.Endpoints {
		empty := make([]string, len(e.EmptyYears))
		for i, year := range e.EmptyYears {
			empty[i] = fmt.Sprint(year)
		}
		t.AppendRow(table.Row{e.Endpoint, e.Years, e.Rows, strings.Join(empty, " "), e.Path})
	}
	t.AppendFooter(table.Row{"Total", "", summary.Rows(), "", ""})
	t.Render()
}
