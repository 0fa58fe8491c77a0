package analysis

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// DateRangeUnavailable marks a summary without any parseable timestamp.
const DateRangeUnavailable = "unavailable"

// Summary holds dataset-wide totals for one view.
type Summary struct {
	TotalReviews  int    `json:"total_reviews" yaml:"total_reviews"`
	DateRange     string `json:"date_range" yaml:"date_range"`
	PositiveRatio string `json:"positive_ratio" yaml:"positive_ratio"`
	NegativeRatio string `json:"negative_ratio" yaml:"negative_ratio"`
	NeutralRatio  string `json:"neutral_ratio" yaml:"neutral_ratio"`
	Positive      int    `json:"positive" yaml:"positive"`
	Negative      int    `json:"negative" yaml:"negative"`
	Neutral       int    `json:"neutral" yaml:"neutral"`
}

// Summarize counts every review in the view, dated or not.
func Summarize(view *dataset.Dataset) Summary {
	s := Summary{TotalReviews: view.Len(), DateRange: DateRangeUnavailable}
	var first, last time.Time
	var dated bool
	for i := range view.Reviews {
		r := &view.Reviews[i]
		if r.HasTime {
			if !dated || r.Time.Before(first) {
				first = r.Time
			}
			if !dated || r.Time.After(last) {
				last = r.Time
			}
			dated = true
		}
		if !view.Schema.Has(dataset.FieldOverall) {
			continue
		}
		switch r.Sentiments[dataset.AspectOverall] {
		case dataset.Positive:
			s.Positive++
		case dataset.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if dated {
		s.DateRange = first.Format("2006-01-02") + " ~ " + last.Format("2006-01-02")
	}
	s.PositiveRatio = ratioString(s.Positive, s.TotalReviews)
	s.NegativeRatio = ratioString(s.Negative, s.TotalReviews)
	s.NeutralRatio = ratioString(s.Neutral, s.TotalReviews)
	return s
}

func ratioString(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(total)*100)
}
