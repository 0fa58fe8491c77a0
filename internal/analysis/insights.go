package analysis

import (
	"fmt"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Insight is one monthly hypothesis: a fixed recipe of predicates over the
// ratio primitive. Requires lists the fields it cannot run without.
type Insight struct {
	ID         int
	Key        string
	Title      string
	Hypothesis string
	Requires   []dataset.Field
	compute    func(c *calc) (*Table, []Dispersion)
}

// Dispersion is the across-bucket sample standard deviation of one series.
type Dispersion struct {
	Series string  `json:"series" yaml:"series"`
	Std    float64 `json:"std" yaml:"std"`
}

// InsightResult is the outcome of one insight over one view. When
// Insufficient is set, Table is nil and Missing names the absent fields.
type InsightResult struct {
	ID           int          `json:"id" yaml:"id"`
	Key          string       `json:"key" yaml:"key"`
	Title        string       `json:"title" yaml:"title"`
	Hypothesis   string       `json:"hypothesis" yaml:"hypothesis"`
	Table        *Table       `json:"table,omitempty" yaml:"table,omitempty"`
	Dispersion   []Dispersion `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`
	Insufficient bool         `json:"insufficient,omitempty" yaml:"insufficient,omitempty"`
	Missing      []string     `json:"missing,omitempty" yaml:"missing,omitempty"`
}

type calc struct {
	rows []dataset.Review
	axis Axis
	m    matcher
}

// Compute runs the insight over a view.
func (in Insight) Compute(view *dataset.Dataset, opt Options) InsightResult {
	return in.run(view, NewAxis(opt.Bucketing, view.Reviews), newMatcher(opt.Vocabulary))
}

func (in Insight) run(view *dataset.Dataset, axis Axis, m matcher) InsightResult {
	res := InsightResult{ID: in.ID, Key: in.Key, Title: in.Title, Hypothesis: in.Hypothesis}
	if missing := view.Schema.Missing(in.Requires...); len(missing) > 0 {
		res.Insufficient = true
		res.Missing = dataset.FieldNames(missing)
		return res
	}
	res.Table, res.Dispersion = in.compute(&calc{rows: view.Reviews, axis: axis, m: m})
	return res
}

// Insights returns the ten insights in id order.
func Insights() []Insight { return insightSet }

// InsightByID looks up an insight by its 1-based id.
func InsightByID(id int) (Insight, error) {
	if id < 1 || id > len(insightSet) {
		return Insight{}, fmt.Errorf("unknown insight %d (valid: 1-%d)", id, len(insightSet))
	}
	return insightSet[id-1], nil
}

func requires(fs ...dataset.Field) []dataset.Field {
	return append([]dataset.Field{dataset.FieldTimestamp}, fs...)
}

const (
	absorption = dataset.AspectAbsorption
	finish     = dataset.AspectFinish
	moisture   = dataset.AspectMoisture
	scent      = dataset.AspectScent
	overall    = dataset.AspectOverall
)

var insightSet = []Insight{
	{
		ID:         1,
		Key:        "absorption-repurchase",
		Title:      "Absorption and repurchase",
		Hypothesis: "Absorption drives repurchase and matters more in summer",
		Requires:   requires(dataset.FieldAbsorption, dataset.FieldPurchaseType),
		compute: func(c *calc) (*Table, []Dispersion) {
			rep := Predicate(c.m.repurchased)
			rt := Ratio(c.rows, And(Is(absorption, dataset.Positive), rep), rep, c.axis)
			return newTable(c.axis, "repurchase_reviews", "absorption_positive", "absorption_positive_pct").
				fill(denominators(rt), numerators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         2,
		Key:        "texture-seasonality",
		Title:      "Sticky texture and season",
		Hypothesis: "Viscous or tacky textures read as positive only in autumn and winter",
		Requires:   requires(dataset.FieldTextureValue, dataset.FieldOverall),
		compute: func(c *calc) (*Table, []Dispersion) {
			rt := PositiveRate(c.rows, c.m.stickyTexture, overall, c.axis)
			return newTable(c.axis, "sticky_reviews", "overall_positive", "positive_pct").
				fill(denominators(rt), numerators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         3,
		Key:        "moisture-dissatisfaction",
		Title:      "Moisture and summer dissatisfaction",
		Hypothesis: "Moisture satisfaction falls while complaints rise in summer",
		Requires:   requires(dataset.FieldMoisture, dataset.FieldOverall),
		compute: func(c *calc) (*Table, []Dispersion) {
			neg := Or(Is(moisture, dataset.Negative), Is(overall, dataset.Negative))
			rt := Ratio(c.rows, neg, All, c.axis)
			return newTable(c.axis, "negative_reviews", "total_reviews", "ratio_pct").
				fill(numerators(rt), denominators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         4,
		Key:        "finish-moisture-conflict",
		Title:      "Fresh finish versus moisture complaints",
		Hypothesis: "Preference for a fresh finish and moisture complaints rise together",
		Requires:   requires(dataset.FieldFinish, dataset.FieldMoisture),
		compute: func(c *calc) (*Table, []Dispersion) {
			both := Ratio(c.rows, And(Is(finish, dataset.Positive), Is(moisture, dataset.Negative)), All, c.axis)
			fp := Ratio(c.rows, Is(finish, dataset.Positive), All, c.axis)
			mn := Ratio(c.rows, Is(moisture, dataset.Negative), All, c.axis)
			return newTable(c.axis, "finish_pos_moisture_neg", "finish_positive", "moisture_negative", "total_reviews", "ratio_pct").
				fill(numerators(both), numerators(fp), numerators(mn), denominators(both), both.Pcts()), nil
		},
	},
	{
		ID:         5,
		Key:        "scent-issues",
		Title:      "Scent complaints by month",
		Hypothesis: "Scent is season independent and only flares up in specific months",
		Requires:   requires(dataset.FieldScent),
		compute: func(c *calc) (*Table, []Dispersion) {
			rt := Ratio(c.rows, Is(scent, dataset.Negative), All, c.axis)
			return newTable(c.axis, "scent_negative", "total_reviews", "ratio_pct").
				fill(numerators(rt), denominators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         6,
		Key:        "plain-new-purchase",
		Title:      "Plain verdicts and new customers",
		Hypothesis: "Plain, unremarkable verdicts grow in months with many first purchases",
		Requires:   requires(dataset.FieldSummary, dataset.FieldPurchaseType),
		compute: func(c *calc) (*Table, []Dispersion) {
			first := Predicate(c.m.firstBuy)
			rt := Ratio(c.rows, And(c.m.plainSummary, first), first, c.axis)
			return newTable(c.axis, "plain_new", "new_purchase", "ratio_pct").
				fill(numerators(rt), denominators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         7,
		Key:        "oily-finish",
		Title:      "Oily skin and finish sensitivity",
		Hypothesis: "Oily skin becomes sensitive to the finish in summer",
		Requires:   requires(dataset.FieldSkinType, dataset.FieldFinish),
		compute: func(c *calc) (*Table, []Dispersion) {
			oily := Predicate(c.m.oilySkin)
			rt := Ratio(c.rows, And(oily, Is(finish, dataset.Negative)), oily, c.axis)
			return newTable(c.axis, "oily_finish_negative", "oily_reviews", "ratio_pct").
				fill(numerators(rt), denominators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         8,
		Key:        "irritation-spikes",
		Title:      "Irritation spikes",
		Hypothesis: "Irritation reports concentrate in specific months",
		Requires:   requires(dataset.FieldIrritationValue),
		compute: func(c *calc) (*Table, []Dispersion) {
			rt := Ratio(c.rows, c.m.irritated, All, c.axis)
			return newTable(c.axis, "irritation_reports", "total_reviews", "ratio_pct").
				fill(numerators(rt), denominators(rt), rt.Pcts()), nil
		},
	},
	{
		ID:         9,
		Key:        "value-buffering",
		Title:      "Value for money as a complaint buffer",
		Hypothesis: "Value-for-money verdicts soften dissatisfaction",
		Requires:   requires(dataset.FieldSummary, dataset.FieldOverall),
		compute: func(c *calc) (*Table, []Dispersion) {
			val := Distribution(c.rows, c.m.valueSummary, overall, c.axis)
			all := Distribution(c.rows, All, overall, c.axis)
			pos := func(x Counts) int { return x.Positive }
			neu := func(x Counts) int { return x.Neutral }
			neg := func(x Counts) int { return x.Negative }
			return newTable(c.axis, "value_positive", "value_neutral", "value_negative", "all_positive", "all_neutral", "all_negative").
				fill(countsOf(val, pos), countsOf(val, neu), countsOf(val, neg), countsOf(all, pos), countsOf(all, neu), countsOf(all, neg)), nil
		},
	},
	{
		ID:         10,
		Key:        "repurchase-resilience",
		Title:      "Seasonal resilience of repurchase reviews",
		Hypothesis: "Repurchase reviews are less affected by the season",
		Requires:   requires(dataset.FieldPurchaseType, dataset.FieldAbsorption, dataset.FieldFinish, dataset.FieldMoisture, dataset.FieldOverall),
		compute: func(c *calc) (*Table, []Dispersion) {
			aspects := []dataset.Aspect{absorption, finish, moisture, overall}
			var cols []string
			var series [][]float64
			var disp []Dispersion
			for _, a := range aspects {
				for _, cohort := range []struct {
					name   string
					subset Predicate
				}{{"repurchase", c.m.repurchased}, {"all", All}} {
					rt := PositiveRate(c.rows, cohort.subset, a, c.axis)
					name := fmt.Sprintf("%s_%s_pct", cohort.name, a)
					cols = append(cols, name)
					series = append(series, rt.Pcts())
					disp = append(disp, Dispersion{Series: name, Std: round2(observedStd(rt))})
				}
			}
			return newTable(c.axis, cols...).fill(series...), disp
		},
	},
}

// observedStd is the dispersion of a ratio series over buckets that have at
// least one denominator row; zero-filled buckets carry no observation.
func observedStd(rt RatioTable) float64 {
	var vals []float64
	for _, c := range rt.Cells {
		if c.Denominator > 0 {
			vals = append(vals, c.Pct)
		}
	}
	return sampleStd(vals)
}
