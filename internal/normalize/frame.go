package normalize

// CellKind describes what kind of JSON value a Cell was built from.
type CellKind uint8

const (
	// Missing marks a column the record did not have.
	Missing CellKind = iota
	Null
	String
	Number
	Bool
	// Nested holds an array (of objects or scalars) kept as compact raw JSON.
	Nested
)

// Cell is a single value of a Frame.
type Cell struct {
	Kind CellKind
	// Text is the string value, the number literal, "true"/"false" or the
	// raw JSON of a nested value. It is empty for Missing and Null.
	Text string
}

func (c Cell) String() string {
	if c.Kind == Missing || c.Kind == Null {
		return ""
	}
	return c.Text
}

// Frame is an in-memory table with ordered, named columns and ordered rows.
//
// Rows are stored sparsely: a row may be shorter than the column list, the
// remaining cells are Missing.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

func NewFrame() *Frame {
	return &Frame{index: map[string]int{}}
}

// column returns the position of a column, adding it at the end if it is new.
func (f *Frame) column(name string) int {
	if i, ok := f.index[name]; ok {
		return i
	}
	f.columns = append(f.columns, name)
	f.index[name] = len(f.columns) - 1
	return len(f.columns) - 1
}

func (f *Frame) appendRow() int {
	f.rows = append(f.rows, nil)
	return len(f.rows) - 1
}

func (f *Frame) set(row, col int, c Cell) {
	r := f.rows[row]
	for len(r) <= col {
		r = append(r, Cell{})
	}
	r[col] = c
	f.rows[row] = r
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

func (f *Frame) Has(column string) bool {
	_, ok := f.index[column]
	return ok
}

// Cell returns the value at a given row and column, Missing if the column
// does not exist or the row has no value for it.
func (f *Frame) Cell(row int, column string) Cell {
	i, ok := f.index[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return Cell{}
	}
	r := f.rows[row]
	if i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Row returns a copy of row i padded to the full width of the frame.
func (f *Frame) Row(i int) []Cell {
	out := make([]Cell, len(f.columns))
	copy(out, f.rows[i])
	return out
}

// Records renders every row as strings, in column order.
func (f *Frame) Records() [][]string {
	out := make([][]string, len(f.rows))
	for i := range f.rows {
		record := make([]string, len(f.columns))
		for j, c := range f.rows[i] {
			record[j] = c.String()
		}
		out[i] = record
	}
	return out
}

// Drop removes the named columns, names that do not exist are ignored.
func (f *Frame) Drop(names ...string) {
	remove := map[int]bool{}
	for _, name := range names {
		if i, ok := f.index[name]; ok {
			remove[i] = true
		}
	}
	if len(remove) == 0 {
		return
	}
	f.keep(func(i int) bool { return !remove[i] })
}

// TruncateAfter removes every column positioned after the named one. It
// reports whether the column existed, nothing is removed if it did not.
func (f *Frame) TruncateAfter(name string) bool {
	pos, ok := f.index[name]
	if !ok {
		return false
	}
	f.keep(func(i int) bool { return i <= pos })
	return true
}

func (f *Frame) keep(pred func(i int) bool) {
	var columns []string
	var kept []int
	index := map[string]int{}
	for i, name := range f.columns {
		if !pred(i) {
			continue
		}
		index[name] = len(columns)
		columns = append(columns, name)
		kept = append(kept, i)
	}

	for r, row := range f.rows {
		next := make([]Cell, 0, len(kept))
		for _, old := range kept {
			if old < len(row) {
				next = append(next, row[old])
			} else {
				next = append(next, Cell{})
			}
		}
		f.rows[r] = next
	}
	f.columns = columns
	f.index = index
}

// Append adds the rows of other to f. Columns of other that f does not have
// are added after the existing ones, in the order other has them.
func (f *Frame) Append(other *Frame) {
	mapping := make([]int, len(other.columns))
	for i, name := range other.columns {
		mapping[i] = f.column(name)
	}
	for _, row := range other.rows {
		r := f.appendRow()
		for i, c := range row {
			if c.Kind == Missing {
				continue
			}
			f.set(r, mapping[i], c)
		}
	}
}
