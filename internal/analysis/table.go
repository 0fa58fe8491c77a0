package analysis

// Table is a bucket-indexed table of named numeric columns. Every table
// carries one row per axis bucket, zero-filled.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// Row is one bucket of a Table; Values align with Table.Columns.
type Row struct {
	Bucket Bucket    `json:"bucket" yaml:"bucket"`
	Values []float64 `json:"values" yaml:"values"`
}

func newTable(axis Axis, cols ...string) *Table {
	t := &Table{Columns: cols, Rows: make([]Row, axis.Len())}
	for i, b := range axis.Buckets() {
		t.Rows[i] = Row{Bucket: b, Values: make([]float64, len(cols))}
	}
	return t
}

// fill sets columns left to right from the given series.
func (t *Table) fill(series ...[]float64) *Table {
	for j, s := range series {
		for i := range t.Rows {
			if i < len(s) {
				t.Rows[i].Values[j] = s[i]
			}
		}
	}
	return t
}

// Column returns a copy of the named column, nil if absent.
func (t *Table) Column(name string) []float64 {
	j := t.colIndex(name)
	if j < 0 {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Values[j]
	}
	return out
}

// Value looks up one cell.
func (t *Table) Value(b Bucket, col string) (float64, bool) {
	j := t.colIndex(col)
	if j < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Bucket == b {
			return r.Values[j], true
		}
	}
	return 0, false
}

func (t *Table) colIndex(name string) int {
	for j, c := range t.Columns {
		if c == name {
			return j
		}
	}
	return -1
}

func numerators(rt RatioTable) []float64 {
	out := make([]float64, len(rt.Cells))
	for i, c := range rt.Cells {
		out[i] = float64(c.Numerator)
	}
	return out
}

func denominators(rt RatioTable) []float64 {
	out := make([]float64, len(rt.Cells))
	for i, c := range rt.Cells {
		out[i] = float64(c.Denominator)
	}
	return out
}

func countsOf(cs []Counts, pick func(Counts) int) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = float64(pick(c))
	}
	return out
}
