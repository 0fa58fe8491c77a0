package analysis

import (
	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// OverviewResult is the per-bucket overall sentiment distribution with the
// overall positive-rate trend. It does not depend on any optional column
// beyond timestamp and overall_sentiment.
type OverviewResult struct {
	Table        *Table   `json:"table,omitempty" yaml:"table,omitempty"`
	Counts       []Counts `json:"counts,omitempty" yaml:"counts,omitempty"`
	Insufficient bool     `json:"insufficient,omitempty" yaml:"insufficient,omitempty"`
	Missing      []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ComputeOverview builds the overview table for a view.
func ComputeOverview(view *dataset.Dataset, opt Options) OverviewResult {
	return overview(view, NewAxis(opt.Bucketing, view.Reviews))
}

func overview(view *dataset.Dataset, axis Axis) OverviewResult {
	var res OverviewResult
	for _, f := range []dataset.Field{dataset.FieldTimestamp, dataset.FieldOverall} {
		if !view.Schema.Has(f) {
			res.Missing = append(res.Missing, f.String())
		}
	}
	if len(res.Missing) > 0 {
		res.Insufficient = true
		return res
	}
	dist := Distribution(view.Reviews, All, dataset.AspectOverall, axis)
	rate := PositiveRate(view.Reviews, All, dataset.AspectOverall, axis)
	res.Counts = dist
	res.Table = newTable(axis, "positive", "neutral", "negative", "total_reviews", "positive_pct").fill(
		countsOf(dist, func(c Counts) int { return c.Positive }),
		countsOf(dist, func(c Counts) int { return c.Neutral }),
		countsOf(dist, func(c Counts) int { return c.Negative }),
		countsOf(dist, func(c Counts) int { return c.Total }),
		rate.Pcts(),
	)
	return res
}
