package analysis

import (
	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// AttributeAspects are the columns of the month x attribute table.
var AttributeAspects = []dataset.Aspect{
	dataset.AspectAbsorption,
	dataset.AspectFinish,
	dataset.AspectMoisture,
	dataset.AspectTexture,
	dataset.AspectScent,
	dataset.AspectIrritation,
	dataset.AspectSoothing,
}

// AttributeResult is the per-bucket positive rate of each attribute.
// Aspects absent from the dataset are left out and listed in Missing.
type AttributeResult struct {
	Table        *Table              `json:"table,omitempty" yaml:"table,omitempty"`
	Counts       map[string][]Counts `json:"counts,omitempty" yaml:"counts,omitempty"`
	Insufficient bool                `json:"insufficient,omitempty" yaml:"insufficient,omitempty"`
	Missing      []string            `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ComputeAttributeTable builds the attribute table for a view.
func ComputeAttributeTable(view *dataset.Dataset, opt Options) AttributeResult {
	return attributeTable(view, NewAxis(opt.Bucketing, view.Reviews))
}

func attributeTable(view *dataset.Dataset, axis Axis) AttributeResult {
	var res AttributeResult
	if !view.Schema.Has(dataset.FieldTimestamp) {
		res.Insufficient = true
		res.Missing = []string{dataset.FieldTimestamp.String()}
		return res
	}
	var cols []string
	var series [][]float64
	res.Counts = map[string][]Counts{}
	for _, a := range AttributeAspects {
		if !view.Schema.Has(a.Field()) {
			res.Missing = append(res.Missing, a.Field().String())
			continue
		}
		dist := Distribution(view.Reviews, All, a, axis)
		rates := make([]float64, len(dist))
		for i, c := range dist {
			rates[i] = Percent(c.Positive, c.Total)
		}
		cols = append(cols, a.String())
		series = append(series, rates)
		res.Counts[a.String()] = dist
	}
	if len(cols) == 0 {
		res.Insufficient = true
		res.Counts = nil
		return res
	}
	res.Table = newTable(axis, cols...).fill(series...)
	return res
}
