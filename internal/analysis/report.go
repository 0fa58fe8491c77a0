package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Options controls insight computation.
type Options struct {
	Bucketing  Bucketing
	Vocabulary Vocabulary
	// Workers bounds concurrent computations in Run; values below 1 mean 1.
	Workers int
}

// DefaultOptions returns month bucketing with the default vocabulary.
func DefaultOptions() Options {
	return Options{
		Bucketing:  BucketMonth,
		Vocabulary: DefaultVocabulary(),
		Workers:    4,
	}
}

// Report bundles every computation over one view.
type Report struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	Name       string          `json:"name" yaml:"name"`
	Product    string          `json:"product,omitempty" yaml:"product,omitempty"`
	Bucketing  Bucketing       `json:"bucketing" yaml:"bucketing"`
	Summary    Summary         `json:"summary" yaml:"summary"`
	Overview   OverviewResult  `json:"overview" yaml:"overview"`
	Insights   []InsightResult `json:"insights" yaml:"insights"`
	Attributes AttributeResult `json:"attributes" yaml:"attributes"`
	Warnings   []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Run computes the summary, the overview, the ten insights and the attribute
// table over view. The computations share nothing mutable and run concurrently; each
// result lands in a fixed slot so the report does not depend on scheduling.
func Run(ctx context.Context, view *dataset.Dataset, opt Options) (*Report, error) {
	axis := NewAxis(opt.Bucketing, view.Reviews)
	m := newMatcher(opt.Vocabulary)
	rep := &Report{
		RunID:     uuid.NewString(),
		Name:      view.Name,
		Product:   view.Product,
		Bucketing: axis.Mode(),
		Insights:  make([]InsightResult, len(insightSet)),
		Warnings:  append([]string(nil), view.Warnings...),
	}
	if w, ok := MultiYearWarning(view, axis.Mode()); ok {
		rep.Warnings = append(rep.Warnings, w)
	}

	workers := opt.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range insightSet {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep.Insights[i] = in.run(view, axis, m)
			return nil
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rep.Attributes = attributeTable(view, axis)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rep.Summary = Summarize(view)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rep.Overview = overview(view, axis)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute report: %w", err)
	}
	return rep, nil
}

// MultiYearWarning reports whether month bucketing would merge the same
// month of different calendar years.
func MultiYearWarning(view *dataset.Dataset, mode Bucketing) (string, bool) {
	years := view.Years()
	if mode != BucketMonth || len(years) < 2 {
		return "", false
	}
	return fmt.Sprintf("reviews span %d calendar years (%d-%d); month bucketing merges the same month across years, use year_month bucketing to separate them",
		len(years), years[0], years[len(years)-1]), true
}

// Markdown renders a compact report for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Product != "" {
		b.WriteString(fmt.Sprintf("Product: %s\n", r.Product))
	}
	s := r.Summary
	b.WriteString(fmt.Sprintf("Reviews: %d\n", s.TotalReviews))
	b.WriteString(fmt.Sprintf("Date range: %s\n", s.DateRange))
	b.WriteString(fmt.Sprintf("Overall sentiment: positive %s (%d), neutral %s (%d), negative %s (%d)\n",
		s.PositiveRatio, s.Positive, s.NeutralRatio, s.Neutral, s.NegativeRatio, s.Negative))
	b.WriteString(fmt.Sprintf("Bucketing: %s\n", r.Bucketing))

	b.WriteString("\n[OVERALL SENTIMENT TREND]\n")
	if r.Overview.Insufficient {
		b.WriteString(fmt.Sprintf("Insufficient data: missing %s\n", strings.Join(r.Overview.Missing, ", ")))
	} else {
		writeTable(&b, r.Overview.Table, r.Bucketing, false)
	}

	for _, in := range r.Insights {
		b.WriteString(fmt.Sprintf("\n[INSIGHT %d: %s]\n", in.ID, in.Title))
		b.WriteString(in.Hypothesis)
		b.WriteString("\n")
		if in.Insufficient {
			b.WriteString(fmt.Sprintf("Insufficient data: missing %s\n", strings.Join(in.Missing, ", ")))
			continue
		}
		writeTable(&b, in.Table, r.Bucketing, false)
		if len(in.Dispersion) > 0 {
			b.WriteString("Dispersion across months (std):\n")
			for _, d := range in.Dispersion {
				b.WriteString(fmt.Sprintf("- %s: %.2f\n", d.Series, d.Std))
			}
		}
	}

	b.WriteString("\n[ATTRIBUTE POSITIVE RATE (%)]\n")
	if r.Attributes.Insufficient {
		b.WriteString(fmt.Sprintf("Insufficient data: missing %s\n", strings.Join(r.Attributes.Missing, ", ")))
	} else {
		writeTable(&b, r.Attributes.Table, r.Bucketing, true)
		if len(r.Attributes.Missing) > 0 {
			b.WriteString(fmt.Sprintf("Not available: %s\n", strings.Join(r.Attributes.Missing, ", ")))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, t *Table, mode Bucketing, allPct bool) {
	if t == nil {
		return
	}
	key := "month"
	if mode == BucketYearMonth {
		key = "year_month"
	}
	b.WriteString("| " + key)
	for _, c := range t.Columns {
		b.WriteString(" | ")
		b.WriteString(c)
	}
	b.WriteString(" |\n|---")
	for range t.Columns {
		b.WriteString("|---")
	}
	b.WriteString("|\n")
	for _, row := range t.Rows {
		b.WriteString("| ")
		b.WriteString(row.Bucket.String())
		for j, v := range row.Values {
			b.WriteString(" | ")
			b.WriteString(formatValue(t.Columns[j], v, allPct))
		}
		b.WriteString(" |\n")
	}
}

func formatValue(col string, v float64, pct bool) string {
	if pct || strings.HasSuffix(col, "_pct") {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}
