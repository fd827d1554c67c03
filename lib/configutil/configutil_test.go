package configutil

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string   `json:"base_url"`
	Endpoints []string `json:"endpoints"`
	EndYear   int      `json:"end_year"`
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "f1ingest.local.json5", LocalPath("f1ingest.json5"))
	require.Equal(t, "/etc/x/telemetry.local.json5", LocalPath("/etc/x/telemetry.json5"))
	require.Equal(t, "noext.local", LocalPath("noext"))
}

func TestReadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "/work/f1ingest.json5", []byte(`{
		// comments and trailing commas are fine
		base_url: "https://api.jolpi.ca/ergast/f1/",
		endpoints: ["races", "drivers"],
		end_year: 2025,
	}`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](fs, "/work/f1ingest.json5")
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:   "https://api.jolpi.ca/ergast/f1/",
		Endpoints: []string{"races", "drivers"},
		EndYear:   2025,
	}, cfg)
}

func TestReadConfigLocalOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/f1ingest.json5", []byte(`{base_url: "https://a", end_year: 2025}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/work/f1ingest.local.json5", []byte(`{end_year: 1960}`), 0644))

	cfg, err := ReadConfig[testConfig](fs, "/work/f1ingest.json5")
	require.NoError(t, err)
	require.Equal(t, "https://a", cfg.BaseUrl)
	require.Equal(t, 1960, cfg.EndYear)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](afero.NewMemMapFs(), "/work/f1ingest.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/f1ingest.json5", []byte(`{base_url: `), 0644))

	_, err := ReadConfig[testConfig](fs, "/work/f1ingest.json5")
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/telemetry.json5", []byte(`{base_url: "found"}`), 0644))
	require.NoError(t, fs.MkdirAll("/repo/a/b/c", 0755))

	cfg, err := ReadRecursively[testConfig](fs, "/repo/a/b/c", "telemetry.json5")
	require.NoError(t, err)
	require.Equal(t, "found", cfg.BaseUrl)

	_, err = ReadRecursively[testConfig](fs, "/elsewhere", "telemetry.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}
