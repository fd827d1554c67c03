// Package csvsink appends normalized frames to cumulative CSV datasets.
package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"f1ingest/internal/normalize"
	"f1ingest/internal/telemetry"

	"github.com/spf13/afero"
)

type Sink struct {
	Fs  afero.Fs
	Tel telemetry.API
}

func New(fs afero.Fs, tel telemetry.API) Sink {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Sink{Fs: fs, Tel: telemetry.Scope("csvsink", tel)}
}

// Append writes the rows of frame to the end of the file at path and returns
// the amount of rows written. The header is only written when the file does
// not exist yet, an existing file keeps whatever header it started with.
func (s Sink) Append(frame *normalize.Frame, path string) (int, error) {
	if frame.Width() == 0 {
		return 0, nil
	}

	_, err := s.Fs.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	if exists {
		header, err := s.readHeader(path)
		if err != nil {
			return 0, err
		}
		if header != nil && !slices.Equal(header, frame.Columns()) {
			s.report().ReportWarning(
				"append-header",
				fmt.Errorf("columns of %s differ from the frame, appending anyway", path),
				"file_columns", len(header),
				"frame_columns", frame.Width(),
			)
		}
	} else {
		err = s.Fs.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return 0, fmt.Errorf("create parent of %s: %w", path, err)
		}
	}

	f, err := s.Fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		err = w.Write(frame.Columns())
		if err != nil {
			return 0, fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	err = w.WriteAll(frame.Records())
	if err != nil {
		return 0, fmt.Errorf("write rows to %s: %w", path, err)
	}
	return frame.Len(), f.Close()
}

// readHeader returns nil for an empty file.
func (s Sink) readHeader(path string) ([]string, error) {
	f, err := s.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return header, nil
}

func (s Sink) report() telemetry.API {
	if s.Tel == nil {
		return telemetry.SlogAPI{}
	}
	return s.Tel
}
