package normalize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// flatten turns a list of JSON objects into a Frame.
//
// Column order is the first occurrence of each leaf path across records,
// each record being walked depth-first in source key order. Nested object
// paths are joined with ".". Arrays are not exploded, they become a single
// Nested cell holding the compact JSON.
func flatten(records []gjson.Result) (*Frame, error) {
	frame := NewFrame()
	for i, record := range records {
		if !record.IsObject() {
			return nil, fmt.Errorf("%w: record %d is %s, expected an object", ErrShape, i, describe(record))
		}
		row := frame.appendRow()
		flattenObject(frame, row, nil, record)
	}
	return frame, nil
}

// flattenObject keeps the path as segments so that an empty key still
// produces a separator: {"": {"a": 1}} is column ".a", not "a".
func flattenObject(frame *Frame, row int, path []string, object gjson.Result) {
	object.ForEach(func(key, value gjson.Result) bool {
		child := append(path[:len(path):len(path)], key.String())
		// an empty object contributes no column
		if value.IsObject() {
			flattenObject(frame, row, child, value)
			return true
		}
		frame.set(row, frame.column(strings.Join(child, ".")), cellOf(value))
		return true
	})
}

func cellOf(value gjson.Result) Cell {
	switch value.Type {
	case gjson.Null:
		return Cell{Kind: Null}
	case gjson.String:
		return Cell{Kind: String, Text: value.Str}
	case gjson.Number:
		return Cell{Kind: Number, Text: value.Raw}
	case gjson.True, gjson.False:
		return Cell{Kind: Bool, Text: value.Raw}
	default:
		return Cell{Kind: Nested, Text: string(pretty.Ugly([]byte(value.Raw)))}
	}
}

func describe(value gjson.Result) string {
	switch {
	case value.IsArray():
		return "an array"
	case value.IsObject():
		return "an object"
	case value.Type == gjson.Null:
		return "null"
	case value.Type == gjson.String:
		return "a string"
	case value.Type == gjson.Number:
		return "a number"
	case value.Type == gjson.True, value.Type == gjson.False:
		return "a boolean"
	}
	return "missing"
}
