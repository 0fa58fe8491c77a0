package analysis

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Bucketing selects how dated reviews are grouped.
type Bucketing string

const (
	// BucketMonth groups by calendar month 1..12, merging years.
	BucketMonth Bucketing = "month"
	// BucketYearMonth groups by (year, month) over the covered span.
	BucketYearMonth Bucketing = "year_month"
)

// ParseBucketing validates a bucketing name; empty means BucketMonth.
func ParseBucketing(s string) (Bucketing, error) {
	switch Bucketing(s) {
	case "", BucketMonth:
		return BucketMonth, nil
	case BucketYearMonth:
		return BucketYearMonth, nil
	}
	return "", fmt.Errorf("unsupported bucketing: %s (use month|year_month)", s)
}

// Bucket is one row key of a monthly table. Year is 0 under BucketMonth.
type Bucket struct {
	Year  int `json:"year,omitempty" yaml:"year,omitempty"`
	Month int `json:"month" yaml:"month"`
}

func (b Bucket) String() string {
	if b.Year == 0 {
		return strconv.Itoa(b.Month)
	}
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}

// Axis enumerates the buckets of every table computed over one view.
// Tables are always zero-filled over the whole axis.
type Axis struct {
	mode    Bucketing
	buckets []Bucket
	// first is year*12+month-1 of buckets[0] under BucketYearMonth.
	first int
}

// NewAxis builds the bucket axis for rows. Under BucketMonth it is always
// 1..12; under BucketYearMonth it spans the earliest to the latest dated row.
func NewAxis(mode Bucketing, rows []dataset.Review) Axis {
	if mode != BucketYearMonth {
		a := Axis{mode: BucketMonth, buckets: make([]Bucket, 12)}
		for m := 1; m <= 12; m++ {
			a.buckets[m-1] = Bucket{Month: m}
		}
		return a
	}
	lo, hi := -1, -1
	for i := range rows {
		if !rows[i].HasTime {
			continue
		}
		k := rows[i].Year*12 + rows[i].Month - 1
		if lo < 0 || k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	a := Axis{mode: BucketYearMonth, first: lo}
	if lo < 0 {
		return a
	}
	for k := lo; k <= hi; k++ {
		a.buckets = append(a.buckets, Bucket{Year: k / 12, Month: k%12 + 1})
	}
	return a
}

// Mode reports the bucketing mode.
func (a Axis) Mode() Bucketing { return a.mode }

// Buckets returns the axis buckets in order.
func (a Axis) Buckets() []Bucket { return a.buckets }

// Len is the number of buckets.
func (a Axis) Len() int { return len(a.buckets) }

// index maps a review to its bucket position; undated reviews have none.
func (a Axis) index(r *dataset.Review) (int, bool) {
	if !r.HasTime {
		return 0, false
	}
	if a.mode == BucketMonth {
		return r.Month - 1, r.Month >= 1 && r.Month <= 12
	}
	i := r.Year*12 + r.Month - 1 - a.first
	return i, i >= 0 && i < len(a.buckets)
}
