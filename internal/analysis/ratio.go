package analysis

import (
	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Predicate selects review rows.
type Predicate func(r *dataset.Review) bool

// All matches every row.
func All(*dataset.Review) bool { return true }

// And matches rows satisfying every predicate.
func And(ps ...Predicate) Predicate {
	return func(r *dataset.Review) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Or matches rows satisfying any predicate.
func Or(ps ...Predicate) Predicate {
	return func(r *dataset.Review) bool {
		for _, p := range ps {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Is matches rows whose aspect carries the given label.
func Is(a dataset.Aspect, s dataset.Sentiment) Predicate {
	return func(r *dataset.Review) bool { return r.Sentiments[a] == s }
}

// Cell is one bucket of a ratio table.
type Cell struct {
	Numerator   int     `json:"numerator" yaml:"numerator"`
	Denominator int     `json:"denominator" yaml:"denominator"`
	Pct         float64 `json:"pct" yaml:"pct"`
}

// RatioTable is a bucket-indexed count/ratio table.
type RatioTable struct {
	Buckets []Bucket
	Cells   []Cell
}

// Pcts returns the ratio column.
func (t RatioTable) Pcts() []float64 {
	out := make([]float64, len(t.Cells))
	for i, c := range t.Cells {
		out[i] = c.Pct
	}
	return out
}

// Ratio partitions rows by bucket and counts rows matching num and den in
// each. A nil den counts every row. Pct is round(num/den*100, 2), or 0 when
// den is 0. Undated rows are not counted anywhere.
func Ratio(rows []dataset.Review, num, den Predicate, axis Axis) RatioTable {
	if den == nil {
		den = All
	}
	t := RatioTable{Buckets: axis.Buckets(), Cells: make([]Cell, axis.Len())}
	for i := range rows {
		r := &rows[i]
		b, ok := axis.index(r)
		if !ok {
			continue
		}
		if num(r) {
			t.Cells[b].Numerator++
		}
		if den(r) {
			t.Cells[b].Denominator++
		}
	}
	for i := range t.Cells {
		t.Cells[i].Pct = Percent(t.Cells[i].Numerator, t.Cells[i].Denominator)
	}
	return t
}

// PositiveRate is the share of subset rows whose aspect is POSITIVE.
func PositiveRate(rows []dataset.Review, subset Predicate, a dataset.Aspect, axis Axis) RatioTable {
	if subset == nil {
		subset = All
	}
	return Ratio(rows, And(subset, Is(a, dataset.Positive)), subset, axis)
}

// Counts is the sentiment distribution of one bucket.
type Counts struct {
	Positive int `json:"positive" yaml:"positive"`
	Neutral  int `json:"neutral" yaml:"neutral"`
	Negative int `json:"negative" yaml:"negative"`
	Total    int `json:"total" yaml:"total"`
}

// Distribution counts labels of aspect a among subset rows per bucket.
func Distribution(rows []dataset.Review, subset Predicate, a dataset.Aspect, axis Axis) []Counts {
	if subset == nil {
		subset = All
	}
	out := make([]Counts, axis.Len())
	for i := range rows {
		r := &rows[i]
		b, ok := axis.index(r)
		if !ok || !subset(r) {
			continue
		}
		c := &out[b]
		c.Total++
		switch r.Sentiments[a] {
		case dataset.Positive:
			c.Positive++
		case dataset.Negative:
			c.Negative++
		default:
			c.Neutral++
		}
	}
	return out
}
