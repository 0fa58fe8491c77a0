package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Filter selects rows for row-level browsing and export. Empty fields match
// everything.
type Filter struct {
	Months     []int
	Sentiments []Sentiment
	SkinTypes  []string
}

// NewFilter validates raw filter values: months 1..12, overall sentiment
// labels in any accepted spelling, skin types compared case-insensitively.
func NewFilter(months []int, sentiments, skinTypes []string) (Filter, error) {
	var f Filter
	for _, m := range months {
		if m < 1 || m > 12 {
			return Filter{}, fmt.Errorf("invalid month %d: want 1-12", m)
		}
		f.Months = append(f.Months, m)
	}
	for _, raw := range sentiments {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		s, ok := ParseSentiment(raw)
		if !ok || isMissing(raw) {
			return Filter{}, fmt.Errorf("invalid sentiment %q: want POSITIVE, NEUTRAL or NEGATIVE", raw)
		}
		f.Sentiments = append(f.Sentiments, s)
	}
	for _, st := range skinTypes {
		if st = strings.TrimSpace(st); st != "" {
			f.SkinTypes = append(f.SkinTypes, st)
		}
	}
	return f, nil
}

// Empty reports whether the filter matches every row.
func (f Filter) Empty() bool {
	return len(f.Months) == 0 && len(f.Sentiments) == 0 && len(f.SkinTypes) == 0
}

// Match reports whether r passes every non-empty criterion. A month
// criterion never matches undated rows.
func (f Filter) Match(r *Review) bool {
	if len(f.Months) > 0 {
		if !r.HasTime {
			return false
		}
		found := false
		for _, m := range f.Months {
			if r.Month == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Sentiments) > 0 {
		found := false
		for _, s := range f.Sentiments {
			if r.Sentiments[AspectOverall] == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.SkinTypes) > 0 {
		found := false
		for _, st := range f.SkinTypes {
			if strings.EqualFold(r.SkinType, st) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filtered returns a new view of the rows matching f, newest first with
// undated rows last. The receiver is never modified.
func (d *Dataset) Filtered(f Filter) *Dataset {
	view := &Dataset{
		Name:     d.Name,
		Header:   d.Header,
		Schema:   d.Schema,
		Warnings: d.Warnings,
		Product:  d.Product,
	}
	for i := range d.Reviews {
		if f.Match(&d.Reviews[i]) {
			view.Reviews = append(view.Reviews, d.Reviews[i])
		}
	}
	sort.SliceStable(view.Reviews, func(i, j int) bool {
		a, b := &view.Reviews[i], &view.Reviews[j]
		if a.HasTime != b.HasTime {
			return a.HasTime
		}
		return a.Time.After(b.Time)
	})
	return view
}
