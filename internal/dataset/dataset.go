package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Unclassified replaces missing skin_type and purchase_type values.
const Unclassified = "unclassified"

// Table is a raw tabular record set as read from disk: untyped string cells.
type Table struct {
	Name     string
	Encoding string
	Header   []string
	Rows     [][]string
	// Total counts every data row seen, including rows skipped by MaxRows.
	Total int
}

// Review is one normalized review record. Records are shared between views
// and must be treated as read-only.
type Review struct {
	Time    time.Time
	HasTime bool
	// Year and Month are derived from Time; both are 0 when HasTime is false.
	Year  int
	Month int

	ProductID       string
	Sentiments      [NumAspects]Sentiment
	TextureValue    string
	IrritationValue string
	PurchaseType    string
	SkinType        string
	Summary         string

	// Raw is the source row, kept for re-export.
	Raw []string
}

// Sentiment returns the normalized label for an aspect.
func (r *Review) Sentiment(a Aspect) Sentiment { return r.Sentiments[a] }

// Dataset is the normalized, immutable review set (or a view over it).
type Dataset struct {
	Name     string
	Header   []string
	Schema   Schema
	Reviews  []Review
	Warnings []string
	// Product is the identifier this view was narrowed to, empty for the full set.
	Product string
}

// Len reports the number of reviews in the view.
func (d *Dataset) Len() int { return len(d.Reviews) }

// Years returns the distinct calendar years covered by dated reviews, ascending.
func (d *Dataset) Years() []int {
	seen := map[int]bool{}
	var out []int
	for i := range d.Reviews {
		r := &d.Reviews[i]
		if !r.HasTime || seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		out = append(out, r.Year)
	}
	sort.Ints(out)
	return out
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02", "20060102", "2006/01/02", "2006.01.02", "2006.1.2", "2006. 1. 2.",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "2006.01.02 15:04", "2006/01/02 15:04:05",
	"01/02/2006", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize turns a raw table into a Dataset. Columns absent from the input
// stay absent from the schema; nothing here is fatal.
func Normalize(t *Table) *Dataset {
	d := &Dataset{Name: t.Name, Header: t.Header}
	cols := [numFields]int{}
	for i := range cols {
		cols[i] = -1
	}
	for i, h := range t.Header {
		f, ok := ResolveColumn(h)
		if !ok || cols[f] >= 0 {
			continue
		}
		cols[f] = i
		d.Schema = d.Schema.with(f)
	}
	cell := func(row []string, f Field) string {
		idx := cols[f]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	categorical := func(row []string, f Field) string {
		v := cell(row, f)
		if isMissing(v) {
			if d.Schema.Has(f) && (f == FieldSkinType || f == FieldPurchaseType) {
				return Unclassified
			}
			return ""
		}
		return v
	}

	var badTime, badLabel int
	d.Reviews = make([]Review, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := Review{Raw: row}
		if d.Schema.Has(FieldTimestamp) {
			if v := cell(row, FieldTimestamp); !isMissing(v) {
				if ts, ok := parseTime(v); ok {
					r.Time, r.HasTime = ts, true
					r.Year, r.Month = ts.Year(), int(ts.Month())
				} else {
					badTime++
				}
			}
		}
		for a := Aspect(0); a < NumAspects; a++ {
			if !d.Schema.Has(a.Field()) {
				r.Sentiments[a] = Neutral
				continue
			}
			s, ok := ParseSentiment(cell(row, a.Field()))
			if !ok {
				badLabel++
			}
			r.Sentiments[a] = s
		}
		r.ProductID = categorical(row, FieldProduct)
		r.TextureValue = categorical(row, FieldTextureValue)
		r.IrritationValue = categorical(row, FieldIrritationValue)
		r.PurchaseType = categorical(row, FieldPurchaseType)
		r.SkinType = categorical(row, FieldSkinType)
		r.Summary = categorical(row, FieldSummary)
		d.Reviews = append(d.Reviews, r)
	}

	if t.Total > len(t.Rows) {
		d.Warnings = append(d.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", len(t.Rows), t.Total))
	}
	if badTime > 0 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%d rows have an unparseable timestamp and are excluded from monthly tables", badTime))
	}
	if badLabel > 0 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%d sentiment labels were not recognised and were treated as NEUTRAL", badLabel))
	}
	return d
}
