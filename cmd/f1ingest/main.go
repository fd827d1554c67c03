package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"f1ingest/cmd/f1ingest/commands"
	"f1ingest/lib/serviceutil"
	"f1ingest/lib/telemetry"

	"github.com/spf13/afero"
)

func main() {
	telemetry.InitSlog(false)

	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		serviceutil.Fatal("failed to get working directory", err)
	}
	tel, err := telemetry.SetupFromEnv(ctx, afero.NewOsFs(), wd, "f1ingest")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err)
	}
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
	}

	code := commands.ExecuteContext(ctx)

	// ctx may already be cancelled by a signal at this point
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	err = tel.Shutdown(shutdownCtx)
	stop()
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
	cancel()
	os.Exit(code)
}
