package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeys(t *testing.T) {
	testCases := []struct {
		endpoint       string
		recordArray    string
		singular       string
		tableContainer string
	}{
		{endpoint: "drivers", recordArray: "Drivers", singular: "driver", tableContainer: "DriverTable"},
		{endpoint: "races", recordArray: "Races", singular: "race", tableContainer: "RaceTable"},
		{endpoint: "constructors", recordArray: "Constructors", singular: "constructor", tableContainer: "ConstructorTable"},
		{endpoint: "circuits", recordArray: "Circuits", singular: "circuit", tableContainer: "CircuitTable"},
		{endpoint: "seasons", recordArray: "Seasons", singular: "season", tableContainer: "SeasonTable"},
		// every trailing 's' goes, not just one
		{endpoint: "status", recordArray: "Status", singular: "statu", tableContainer: "StatuTable"},
		{endpoint: "class", recordArray: "Class", singular: "cla", tableContainer: "ClaTable"},
		// the rest of the string is lower-cased
		{endpoint: "driverStandings", recordArray: "Driverstandings", singular: "driverStanding", tableContainer: "DriverstandingTable"},
		{endpoint: "sss", recordArray: "Sss", singular: "", tableContainer: "Table"},
		{endpoint: "", recordArray: "", singular: "", tableContainer: "Table"},
	}

	for _, test := range testCases {
		keys := DeriveKeys(test.endpoint)
		require.Equal(t, test.endpoint, keys.Endpoint)
		require.Equal(t, test.recordArray, keys.RecordArray, "record array key for %q", test.endpoint)
		require.Equal(t, test.singular, keys.Singular, "singular for %q", test.endpoint)
		require.Equal(t, test.tableContainer, keys.TableContainer, "table container key for %q", test.endpoint)
	}
}

func TestKeysPath(t *testing.T) {
	require.Equal(t, []string{"MRData", "RaceTable", "Races"}, DeriveKeys("races").Path())
}
