package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
)

// FilesystemOutput writes response bodies as files of a directory.
type FilesystemOutput struct {
	fs        afero.Fs
	directory string
}

func NewFilesystemOutput(fs afero.Fs, dir string) (FilesystemOutput, error) {
	err := fs.MkdirAll(dir, 0755)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("create output directory: %w", err)
	}
	return FilesystemOutput{fs: fs, directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents []byte) {
	err := afero.WriteFile(o.fs, filepath.Join(o.directory, id), contents, 0644)
	if err != nil {
		slog.Warn("failed to write response file", "id", id, "err", err)
	}
}

// FileId turns a request url into a flat file name,
// "/ergast/f1/1950/races?limit=100&offset=0" -> "ergast_f1_1950_races_limit-100_offset-0.json".
func FileId(requestUrl string) string {
	parsed, err := url.Parse(requestUrl)
	if err != nil {
		return strings.NewReplacer("/", "_", ":", "_", "?", "_").Replace(requestUrl) + ".json"
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	// url.Values.Encode sorts keys
	for _, pair := range strings.Split(parsed.Query().Encode(), "&") {
		if pair == "" {
			continue
		}
		parts = append(parts, strings.Replace(pair, "=", "-", 1))
	}
	return strings.Join(parts, "_") + ".json"
}

// DumpResponses writes the body of every 200 response the client receives
// to out.
func DumpResponses(client *resty.Client, out FilesystemOutput) {
	client.OnAfterResponse(func(c *resty.Client, res *resty.Response) error {
		if res.StatusCode() != http.StatusOK {
			return nil
		}
		out.Write(FileId(res.Request.URL), res.Body())
		return nil
	})
}
