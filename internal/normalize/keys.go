package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvelopeKey is the top level field every Ergast response is wrapped in.
const EnvelopeKey = "MRData"

// Keys holds the JSON keys used to locate the records of an endpoint inside
// a response envelope.
type Keys struct {
	Endpoint string
	// RecordArray names the array of row objects, e.g. "Drivers".
	RecordArray string
	// Singular is the endpoint with every trailing 's' removed. This is a
	// naive strip, "status" becomes "statu".
	Singular string
	// TableContainer names the object wrapping the record array, e.g. "DriverTable".
	TableContainer string
}

// Path returns the lookup path from the root of the envelope to the record array.
func (k Keys) Path() []string {
	return []string{EnvelopeKey, k.TableContainer, k.RecordArray}
}

// DeriveKeys computes the record array and table container keys for an
// endpoint name like "drivers" or "races".
//
// The derivation only works for endpoints whose response keys follow the
// "add a trailing s" pattern, anything else fails later with a LookupError.
func DeriveKeys(endpoint string) Keys {
	singular := strings.TrimRight(endpoint, "s")
	return Keys{
		Endpoint:       endpoint,
		RecordArray:    capitalize(endpoint),
		Singular:       singular,
		TableContainer: capitalize(singular) + "Table",
	}
}

// upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(first)) + strings.ToLower(s[size:])
}
