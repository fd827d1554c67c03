// Package ingest drives the fetch, normalize and append loop over every
// endpoint and season of a Plan.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"f1ingest/internal/normalize"
	"f1ingest/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("f1ingest/internal/ingest")
	meter  = otel.Meter("f1ingest/internal/ingest")
)

// Fetcher returns the raw pages of the season data of an endpoint.
type Fetcher interface {
	FetchPages(ctx context.Context, year int, endpoint string) ([][]byte, error)
}

// Appender writes a frame to the end of a dataset.
type Appender interface {
	Append(frame *normalize.Frame, path string) (int, error)
}

type Driver struct {
	Fetcher Fetcher
	Sink    Appender
	Tel     telemetry.API
}

type EndpointSummary struct {
	Endpoint string
	Path     string
	Years    int
	// EmptyYears are the seasons that had no records, nothing is appended
	// for them.
	EmptyYears []int
	Rows       int
}

type Summary struct {
	RunId     string
	Endpoints []EndpointSummary
}

func (s Summary) Rows() int {
	total := 0
	for _, e := range s.Endpoints {
		total += e.Rows
	}
	return total
}

// Run processes every endpoint of the plan in order, and for each one every
// year from StartYear to EndYear. The first error stops the run, the returned
// summary covers what was appended until then.
func (d Driver) Run(ctx context.Context, plan Plan) (Summary, error) {
	summary := Summary{RunId: uuid.NewString()}
	if err := plan.Validate(); err != nil {
		return summary, fmt.Errorf("invalid plan: %w", err)
	}

	tel := d.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.Scope("ingest", tel)

	rowCounter, err := meter.Int64Counter(
		"ingest.rows_appended",
		metric.WithDescription("Rows appended to the csv datasets."),
	)
	if err != nil {
		return summary, err
	}

	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", summary.RunId))

	step := 0
	for _, endpoint := range plan.Endpoints {
		summary.Endpoints = append(summary.Endpoints, EndpointSummary{
			Endpoint: endpoint,
			Path:     plan.OutputPath(endpoint),
		})
		current := &summary.Endpoints[len(summary.Endpoints)-1]

		for year := plan.StartYear; year <= plan.EndYear; year++ {
			step++
			slog.InfoContext(
				ctx, "fetching season",
				"endpoint", endpoint,
				"year", year,
				"step", fmt.Sprintf("%d/%d", step, plan.Steps()),
				"run_id", summary.RunId,
			)

			rows, err := d.runStep(ctx, endpoint, year, current.Path)
			if err != nil {
				tel.ReportBroken("driver.run", err, "endpoint", endpoint, "year", year)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return summary, fmt.Errorf("%s %d: %w", endpoint, year, err)
			}

			current.Years++
			if rows == 0 {
				current.EmptyYears = append(current.EmptyYears, year)
				tel.ReportDebug("no records in season", "endpoint", endpoint, "year", year)
				continue
			}
			current.Rows += rows
			rowCounter.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("endpoint", endpoint)))
			tel.ReportCount("rows-appended", int64(current.Rows))
		}
	}

	slog.InfoContext(ctx, "ingest complete", "rows", summary.Rows(), "run_id", summary.RunId)
	return summary, nil
}

func (d Driver) runStep(ctx context.Context, endpoint string, year int, path string) (int, error) {
	ctx, span := tracer.Start(ctx, "Step")
	defer span.End()
	span.SetAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Int("year", year),
	)

	pages, err := d.Fetcher.FetchPages(ctx, year, endpoint)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	frame, err := normalize.NormalizePages(pages, endpoint)
	if err != nil {
		return 0, fmt.Errorf("normalize: %w", err)
	}
	if frame.Len() == 0 {
		return 0, nil
	}
	rows, err := d.Sink.Append(frame, path)
	if err != nil {
		return 0, fmt.Errorf("append: %w", err)
	}
	span.SetAttributes(attribute.Int("rows", rows))
	return rows, nil
}
