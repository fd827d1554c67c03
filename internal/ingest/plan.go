package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Plan is the set of (endpoint, year) pairs a run covers.
type Plan struct {
	Endpoints []string
	// StartYear and EndYear are both inclusive.
	StartYear int
	EndYear   int
	OutputDir string
}

func (p Plan) Validate() error {
	var errlist []error
	if len(p.Endpoints) == 0 {
		errlist = append(errlist, errors.New("no endpoints"))
	}
	for _, endpoint := range p.Endpoints {
		if strings.Trim(endpoint, "/") == "" {
			errlist = append(errlist, fmt.Errorf("invalid endpoint %q", endpoint))
		}
	}
	if p.StartYear <= 0 {
		errlist = append(errlist, fmt.Errorf("invalid start year %d", p.StartYear))
	}
	if p.EndYear < p.StartYear {
		errlist = append(errlist, fmt.Errorf("end year %d is before start year %d", p.EndYear, p.StartYear))
	}
	if p.OutputDir == "" {
		errlist = append(errlist, errors.New("no output directory"))
	}
	return errors.Join(errlist...)
}

// OutputPath is the dataset all the years of an endpoint are appended to.
func (p Plan) OutputPath(endpoint string) string {
	name := strings.ReplaceAll(strings.Trim(endpoint, "/"), "/", "_")
	return filepath.Join(p.OutputDir, name+"_data.csv")
}

// Steps is the amount of (endpoint, year) pairs.
func (p Plan) Steps() int {
	return len(p.Endpoints) * (p.EndYear - p.StartYear + 1)
}
