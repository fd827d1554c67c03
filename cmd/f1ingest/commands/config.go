package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"f1ingest/internal/ergast"
	"f1ingest/internal/ingest"
	"f1ingest/lib/configutil"
	"f1ingest/lib/restyutil"

	"dario.cat/mergo"
	"github.com/spf13/afero"
)

const DefaultConfigFile = "f1ingest.json5"

type Config struct {
	BaseUrl   string   `json:"base_url"`
	Endpoints []string `json:"endpoints"`
	StartYear int      `json:"start_year"`
	EndYear   int      `json:"end_year"`
	OutputDir string   `json:"output_dir"`
	// PageLimit is a pointer so that an explicit 0 (no paging) is not
	// replaced by the default.
	PageLimit *int    `json:"page_limit"`
	RateLimit float64 `json:"rate_limit"`
	UserAgent string  `json:"user_agent"`
}

func DefaultConfig() Config {
	pageLimit := ergast.MaxPageLimit
	return Config{
		BaseUrl:   ergast.DefaultBaseUrl,
		Endpoints: []string{"races", "drivers"},
		StartYear: 1950,
		EndYear:   2025,
		OutputDir: "data/openf1source",
		PageLimit: &pageLimit,
		RateLimit: ergast.DefaultRateLimit,
		UserAgent: "f1ingest/1.0",
	}
}

// loadConfig reads the config file at path and fills every unset field with
// DefaultConfig. A missing file is not an error.
func loadConfig(fs afero.Fs, path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](fs, path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		cfg = Config{}
	} else if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	err = mergo.Merge(&cfg, DefaultConfig(), mergo.WithoutDereference)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Plan() ingest.Plan {
	return ingest.Plan{
		Endpoints: c.Endpoints,
		StartYear: c.StartYear,
		EndYear:   c.EndYear,
		OutputDir: c.OutputDir,
	}
}

func (c Config) ClientOptions() ergast.ClientOptions {
	opts := ergast.ClientOptions{
		BaseUrl:   c.BaseUrl,
		RateLimit: c.RateLimit,
		UserAgent: c.UserAgent,
	}
	if c.PageLimit != nil {
		opts.PageLimit = *c.PageLimit
	}
	return opts
}

// newClient creates the API client, responses are saved to dumpDir when it
// is not empty.
func newClient(cfg Config, dumpDir string) (*ergast.Client, error) {
	opts := cfg.ClientOptions()
	if dumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(fs, dumpDir)
		if err != nil {
			return nil, err
		}
		opts.Dump = &out
	}
	client, err := ergast.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}
