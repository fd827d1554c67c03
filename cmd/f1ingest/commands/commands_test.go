package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"f1ingest/internal/ergast"
	"f1ingest/internal/normalize"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func executeArgs(t *testing.T, memfs afero.Fs, args ...string) (string, error) {
	t.Helper()
	previous := fs
	fs = memfs
	t.Cleanup(func() { fs = previous })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(afero.NewMemMapFs(), DefaultConfigFile)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, ergast.MaxPageLimit, cfg.ClientOptions().PageLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "f1ingest.json5", []byte(`{
		// only the recent seasons
		start_year: 2020,
		endpoints: ["results"],
		page_limit: 0,
	}`), 0644))
	require.NoError(t, afero.WriteFile(memfs, "f1ingest.local.json5", []byte(`{end_year: 2021}`), 0644))

	cfg, err := loadConfig(memfs, "f1ingest.json5")
	require.NoError(t, err)
	require.Equal(t, 2020, cfg.StartYear)
	require.Equal(t, 2021, cfg.EndYear)
	require.Equal(t, []string{"results"}, cfg.Endpoints)
	require.Equal(t, "data/openf1source", cfg.OutputDir)
	require.Equal(t, ergast.DefaultBaseUrl, cfg.BaseUrl)
	require.Equal(t, 0, cfg.ClientOptions().PageLimit)
}

func TestLoadConfigInvalid(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "f1ingest.json5", []byte(`{start_year: `), 0644))
	_, err := loadConfig(memfs, "f1ingest.json5")
	require.Error(t, err)
}

func TestKeysCommand(t *testing.T) {
	out, err := executeArgs(t, afero.NewMemMapFs(), "keys", "drivers", "status")
	require.NoError(t, err)
	require.Contains(t, out, "DriverTable")
	require.Contains(t, out, "MRData > StatuTable > Status")
}

func TestNormalizeCommand(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "drivers.json", []byte(
		`{"MRData":{"DriverTable":{"Drivers":[{"driverId":"farina"},{"driverId":"fangio"}]}}}`,
	), 0644))

	out, err := executeArgs(t, memfs, "normalize", "drivers.json", "--endpoint", "drivers")
	require.NoError(t, err)
	require.Contains(t, out, "fangio")
	require.Contains(t, out, "2 rows")

	_, err = executeArgs(t, memfs, "normalize", "drivers.json", "--endpoint", "drivers", "--out", "out/drivers_data.csv")
	require.NoError(t, err)
	contents, err := afero.ReadFile(memfs, "out/drivers_data.csv")
	require.NoError(t, err)
	require.Equal(t, "driverId\nfarina\nfangio\n", string(contents))

	_, err = executeArgs(t, memfs, "normalize", "drivers.json", "--endpoint", "races")
	require.ErrorContains(t, err, "RaceTable")
}

func TestRunCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/f1/1950/drivers":
			fmt.Fprint(w, `{"MRData":{"limit":"100","offset":"0","total":"1","DriverTable":{"Drivers":[{"driverId":"farina"}]}}}`)
		case "/f1/1951/drivers":
			fmt.Fprint(w, `{"MRData":{"limit":"100","offset":"0","total":"1","DriverTable":{"Drivers":[{"driverId":"fangio"}]}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "f1ingest.json5", []byte(fmt.Sprintf(
		`{base_url: %q, rate_limit: 1000}`, server.URL+"/f1/",
	)), 0644))

	out, err := executeArgs(t, memfs,
		"run", "--from", "1950", "--to", "1951", "--endpoint", "drivers", "--out", "datasets", "--dump", "raw",
	)
	require.NoError(t, err)
	require.Contains(t, out, "datasets/drivers_data.csv")

	contents, err := afero.ReadFile(memfs, "datasets/drivers_data.csv")
	require.NoError(t, err)
	require.Equal(t, "driverId\nfarina\nfangio\n", string(contents))

	out, err = executeArgs(t, memfs, "normalize", "raw/f1_1951_drivers_limit-100_offset-0.json", "--endpoint", "drivers")
	require.NoError(t, err)
	require.Contains(t, out, "fangio")
}

func TestRunCommandInvalidRange(t *testing.T) {
	_, err := executeArgs(t, afero.NewMemMapFs(), "run", "--from", "2000", "--to", "1999")
	require.ErrorContains(t, err, "invalid plan")
}

func TestPreviewRequiresYear(t *testing.T) {
	_, err := executeArgs(t, afero.NewMemMapFs(), "preview", "--endpoint", "races")
	require.ErrorContains(t, err, "--year")
}

func TestRenderFrameKeepsColumnCase(t *testing.T) {
	frame, err := normalize.Normalize([]byte(`{"MRData":{"RaceTable":{"Races":[
		{"raceName":"Bahrain Grand Prix","Circuit":{"Location":{"country":"Bahrain"}}}
	]}}}`), "races")
	require.NoError(t, err)

	var out bytes.Buffer
	renderFrame(&out, frame)
	require.Contains(t, out.String(), "raceName")
	require.Contains(t, out.String(), "Circuit.Location.country")
	require.Contains(t, out.String(), "1 rows")
	require.NotContains(t, out.String(), "CIRCUIT")
}

func TestExecuteLogsErrors(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"bogus"})

	require.Equal(t, 1, execute(context.Background(), cmd))
	require.Contains(t, logs.String(), "command failed")
	require.Contains(t, logs.String(), "bogus")
}
