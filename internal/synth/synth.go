// Package synth generates labelled review tables with seasonal patterns for
// demos and tests.
package synth

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Options controls synthetic generation.
type Options struct {
	Seed     int64
	Rows     int
	Products []string
	Start    time.Time
	End      time.Time
	// RepurchaseShare is the probability that a review is a repurchase.
	RepurchaseShare float64
}

// DefaultOptions covers one calendar year.
func DefaultOptions() Options {
	return Options{
		Seed:            42,
		Rows:            1200,
		Products:        []string{"Hydra Toner", "Calm Toner", "Clear Toner"},
		Start:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		RepurchaseShare: 0.35,
	}
}

// Header is the column layout of generated tables.
var Header = []string{
	"timestamp", "product_id",
	"overall_sentiment", "absorption_sentiment", "finish_sentiment", "moisture_sentiment",
	"scent_sentiment", "texture_sentiment", "irritation_sentiment", "soothing_sentiment",
	"texture_value", "irritation_value", "purchase_type", "skin_type", "one_line_summary",
}

// Generate builds a raw table. The same options always produce the same rows.
// Repurchase reviews draw labels from flat probabilities; everyone else
// rates overall, absorption and finish higher and moisture lower in summer.
func Generate(opt Options) *dataset.Table {
	f := gofakeit.New(opt.Seed)
	unit := func() float64 { return f.Float64Range(0, 1) }
	products := opt.Products
	if len(products) == 0 {
		products = DefaultOptions().Products
	}
	t := &dataset.Table{Name: "synthetic.csv", Encoding: "utf-8", Header: Header}
	for i := 0; i < opt.Rows; i++ {
		ts := f.DateRange(opt.Start, opt.End)
		summer := ts.Month() >= time.June && ts.Month() <= time.August
		repurchase := unit() < opt.RepurchaseShare

		purchase := f.RandomString([]string{"first-purchase", "gift", "trial", ""})
		if repurchase {
			purchase = "repurchase"
		}
		season := func(base, summerShift float64) float64 {
			if repurchase {
				return base
			}
			if summer {
				return base + summerShift
			}
			return base - summerShift/3
		}
		label := func(pPos, pNeg float64) string {
			x := unit()
			switch {
			case x < pPos:
				return string(dataset.Positive)
			case x < pPos+pNeg:
				return string(dataset.Negative)
			}
			return string(dataset.Neutral)
		}

		summary := f.Sentence(5)
		switch x := unit(); {
		case x < 0.12:
			summary = "plain " + summary
		case x < 0.25:
			summary = "value-for-money " + summary
		}

		t.Rows = append(t.Rows, []string{
			ts.Format("2006-01-02"),
			f.RandomString(products),
			label(season(0.5, 0.2), 0.15),
			label(season(0.5, 0.25), 0.1),
			label(season(0.45, 0.25), 0.15),
			label(season(0.45, -0.2), season(0.1, 0.2)),
			label(0.4, 0.1),
			label(0.45, 0.15),
			label(0.3, 0.1),
			label(0.4, 0.1),
			f.RandomString([]string{"watery", "light", "viscous", "tacky"}),
			f.RandomString([]string{"none", "none", "none", "stinging", "redness"}),
			purchase,
			f.RandomString([]string{"oily", "dry", "combination", "sensitive", ""}),
			summary,
		})
		t.Total++
	}
	return t
}
