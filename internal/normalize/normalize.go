// Package normalize converts Ergast API responses into flat tabular frames.
//
// A response looks like {"MRData": {"<Singular>Table": {"<Plural>": [...]}}},
// the keys being derived from the endpoint name by DeriveKeys. Every record
// of the array becomes one row, every leaf of the record one column.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// TimeColumn is always dropped from a normalized frame.
	TimeColumn = "time"
	// CountryColumn is the last column kept when it is present.
	CountryColumn = "Circuit.Location.country"
)

var (
	ErrLookup      = errors.New("response lookup failed")
	ErrShape       = errors.New("unexpected response shape")
	ErrInvalidJSON = errors.New("invalid json")
)

// LookupError is returned when a key on the path to the record array is
// missing, or when the value it should be looked up in is not an object.
type LookupError struct {
	// Path leading to the object Key was looked up in.
	Path []string
	Key  string
}

func (e *LookupError) Error() string {
	parent := "<root>"
	if len(e.Path) > 0 {
		parent = strings.Join(e.Path, ".")
	}
	return fmt.Sprintf("key %q not found in %s", e.Key, parent)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// Normalize flattens the record array of one response into a Frame and
// applies the column trimming rules. It performs no I/O and holds no state,
// calling it twice with the same input gives identical frames.
func Normalize(envelope []byte, endpoint string) (*Frame, error) {
	return NormalizePages([][]byte{envelope}, endpoint)
}

// NormalizePages is Normalize over several pages of the same response. Each
// page is flattened on its own and appended to the result in page order, the
// trimming rules are applied once so they see the merged column order.
func NormalizePages(pages [][]byte, endpoint string) (*Frame, error) {
	keys := DeriveKeys(endpoint)

	merged := NewFrame()
	for i, page := range pages {
		frame, err := normalizePage(page, keys)
		if err != nil {
			if len(pages) > 1 {
				return nil, fmt.Errorf("page %d: %w", i, err)
			}
			return nil, err
		}
		merged.Append(frame)
	}

	Trim(merged)
	return merged, nil
}

func normalizePage(page []byte, keys Keys) (*Frame, error) {
	records, err := lookupRecords(page, keys)
	if err != nil {
		return nil, err
	}
	return flatten(records)
}

// Trim drops the "time" column, then every column after
// "Circuit.Location.country". The second cut is positional, which columns
// go depends on the flattening order.
func Trim(frame *Frame) {
	frame.Drop(TimeColumn)
	frame.TruncateAfter(CountryColumn)
}

func lookupRecords(envelope []byte, keys Keys) ([]gjson.Result, error) {
	if !gjson.ValidBytes(envelope) {
		return nil, ErrInvalidJSON
	}

	current := gjson.ParseBytes(envelope)
	path := keys.Path()
	for i, key := range path {
		next, ok := member(current, key)
		if !ok {
			return nil, &LookupError{Path: path[:i], Key: key}
		}
		current = next
	}

	if !current.IsArray() {
		return nil, fmt.Errorf(
			"%w: %s is %s, expected an array",
			ErrShape, strings.Join(path, "."), describe(current),
		)
	}
	return current.Array(), nil
}

// member looks a key up by exact name, gjson paths would treat characters
// like '.' or '*' in derived keys as syntax. Duplicate keys resolve to the
// last one.
func member(object gjson.Result, key string) (gjson.Result, bool) {
	if !object.IsObject() {
		return gjson.Result{}, false
	}
	var found gjson.Result
	ok := false
	object.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			ok = true
		}
		return true
	})
	return found, ok
}
