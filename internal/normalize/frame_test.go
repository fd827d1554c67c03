package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFrame(columns []string, rows ...[]string) *Frame {
	frame := NewFrame()
	for _, name := range columns {
		frame.column(name)
	}
	for _, values := range rows {
		r := frame.appendRow()
		for i, v := range values {
			if v == "" {
				continue
			}
			frame.set(r, i, Cell{Kind: String, Text: v})
		}
	}
	return frame
}

func TestFrameDrop(t *testing.T) {
	frame := buildFrame([]string{"a", "b", "c"}, []string{"1", "2", "3"}, []string{"4"})

	frame.Drop("b", "does-not-exist")
	require.Equal(t, []string{"a", "c"}, frame.Columns())
	require.Equal(t, [][]string{{"1", "3"}, {"4", ""}}, frame.Records())
	require.False(t, frame.Has("b"))
	require.Equal(t, "3", frame.Cell(0, "c").String())
}

func TestFrameTruncateAfter(t *testing.T) {
	frame := buildFrame([]string{"a", "b", "c", "d"}, []string{"1", "2", "3", "4"})

	require.False(t, frame.TruncateAfter("z"))
	require.Equal(t, 4, frame.Width())

	require.True(t, frame.TruncateAfter("b"))
	require.Equal(t, []string{"a", "b"}, frame.Columns())
	require.Equal(t, [][]string{{"1", "2"}}, frame.Records())

	require.True(t, frame.TruncateAfter("b"))
	require.Equal(t, []string{"a", "b"}, frame.Columns())
}

func TestFrameAppend(t *testing.T) {
	left := buildFrame([]string{"a", "b"}, []string{"1", "2"})
	right := buildFrame([]string{"c", "a"}, []string{"3", "4"})

	left.Append(right)
	require.Equal(t, []string{"a", "b", "c"}, left.Columns())
	require.Equal(t, [][]string{{"1", "2", ""}, {"4", "", "3"}}, left.Records())
	require.Equal(t, Missing, left.Cell(1, "b").Kind)
}

func TestFrameRowIsPadded(t *testing.T) {
	frame := buildFrame([]string{"a", "b"}, []string{"1"})
	row := frame.Row(0)
	require.Len(t, row, 2)
	require.Equal(t, Cell{}, row[1])

	// the returned row is a copy
	row[0] = Cell{Kind: String, Text: "changed"}
	require.Equal(t, "1", frame.Cell(0, "a").Text)
}

func TestFrameCellOutOfRange(t *testing.T) {
	frame := buildFrame([]string{"a"}, []string{"1"})
	require.Equal(t, Cell{}, frame.Cell(5, "a"))
	require.Equal(t, Cell{}, frame.Cell(-1, "a"))
	require.Equal(t, Cell{}, frame.Cell(0, "b"))
}
