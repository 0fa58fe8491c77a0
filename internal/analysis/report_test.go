package analysis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

func TestSummarize(t *testing.T) {
	d := load(t, "timestamp,overall_sentiment\n"+
		"2024-05-02,POSITIVE\n"+
		"2024-01-09,POSITIVE\n"+
		"bad,NEGATIVE\n")
	s := analysis.Summarize(d)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, "2024-01-09 ~ 2024-05-02", s.DateRange)
	assert.Equal(t, "66.67%", s.PositiveRatio)
	assert.Equal(t, "33.33%", s.NegativeRatio)
	assert.Equal(t, "0.00%", s.NeutralRatio)
}

func TestSummarize_Empty(t *testing.T) {
	d := load(t, "timestamp,overall_sentiment\n")
	s := analysis.Summarize(d)
	assert.Zero(t, s.TotalReviews)
	assert.Equal(t, analysis.DateRangeUnavailable, s.DateRange)
	assert.Equal(t, "0%", s.PositiveRatio)
	assert.Equal(t, "0%", s.NegativeRatio)
	assert.Equal(t, "0%", s.NeutralRatio)
}

func TestAttributeTable(t *testing.T) {
	d := load(t, "timestamp,absorption_sentiment,scent_sentiment\n"+
		"2024-04-01,POSITIVE,NEGATIVE\n"+
		"2024-04-02,NEGATIVE,POSITIVE\n"+
		"2024-04-03,POSITIVE,POSITIVE\n"+
		"2024-09-01,NEUTRAL,POSITIVE\n")
	res := analysis.ComputeAttributeTable(d, analysis.DefaultOptions())
	require.False(t, res.Insufficient)
	assert.Equal(t, []string{"absorption", "scent"}, res.Table.Columns)
	assert.Equal(t, []string{"finish_sentiment", "moisture_sentiment", "texture_sentiment", "irritation_sentiment", "soothing_sentiment"}, res.Missing)
	require.Len(t, res.Table.Rows, 12)
	assert.Equal(t, 66.67, value(t, res.Table, month(4), "absorption"))
	assert.Equal(t, 66.67, value(t, res.Table, month(4), "scent"))
	assert.Equal(t, 0.0, value(t, res.Table, month(9), "absorption"))
	assert.Equal(t, 100.0, value(t, res.Table, month(9), "scent"))
	assert.Equal(t, 0.0, value(t, res.Table, month(1), "scent"))

	c := res.Counts["absorption"][3]
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, c.Total, c.Positive+c.Neutral+c.Negative)

	none := analysis.ComputeAttributeTable(load(t, "timestamp,overall_sentiment\n2024-01-01,POSITIVE\n"), analysis.DefaultOptions())
	assert.True(t, none.Insufficient)
	assert.Nil(t, none.Table)

	noTime := analysis.ComputeAttributeTable(load(t, "absorption_sentiment\nPOSITIVE\n"), analysis.DefaultOptions())
	assert.True(t, noTime.Insufficient)
	assert.Equal(t, []string{"timestamp"}, noTime.Missing)
}

func TestOverview(t *testing.T) {
	d := load(t, "timestamp,overall_sentiment\n"+
		"2024-02-01,POSITIVE\n"+
		"2024-02-11,NEGATIVE\n"+
		"2024-02-21,POSITIVE\n"+
		"2024-08-01,NEUTRAL\n"+
		",POSITIVE\n")
	res := analysis.ComputeOverview(d, analysis.DefaultOptions())
	require.False(t, res.Insufficient)
	require.Len(t, res.Table.Rows, 12)
	assert.Equal(t, 2.0, value(t, res.Table, month(2), "positive"))
	assert.Equal(t, 1.0, value(t, res.Table, month(2), "negative"))
	assert.Equal(t, 3.0, value(t, res.Table, month(2), "total_reviews"))
	assert.Equal(t, 66.67, value(t, res.Table, month(2), "positive_pct"))
	assert.Equal(t, 1.0, value(t, res.Table, month(8), "neutral"))
	assert.Equal(t, 0.0, value(t, res.Table, month(8), "positive_pct"))
	assert.Equal(t, 0.0, value(t, res.Table, month(5), "total_reviews"))

	// independent of one_line_summary, unlike insight 9
	assert.True(t, insight(t, d, 9, analysis.DefaultOptions()).Insufficient)

	missing := analysis.ComputeOverview(load(t, "timestamp,absorption_sentiment\n2024-01-01,POSITIVE\n"), analysis.DefaultOptions())
	assert.True(t, missing.Insufficient)
	assert.Equal(t, []string{"overall_sentiment"}, missing.Missing)
}

func TestRun_MultiYearWarningOnlyForMonthBucketing(t *testing.T) {
	d := load(t, "timestamp,overall_sentiment\n2023-05-01,POSITIVE\n2024-05-01,NEGATIVE\n")

	rep, err := analysis.Run(context.Background(), d, analysis.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "span 2 calendar years")
	assert.Empty(t, d.Warnings)

	opt := analysis.DefaultOptions()
	opt.Bucketing = analysis.BucketYearMonth
	rep, err = analysis.Run(context.Background(), d, opt)
	require.NoError(t, err)
	assert.Empty(t, rep.Warnings)
}

func TestRun_DeterministicAndOrdered(t *testing.T) {
	d := synthDataset(1500, 5)
	opt := analysis.DefaultOptions()
	opt.Workers = 8

	a, err := analysis.Run(context.Background(), d, opt)
	require.NoError(t, err)
	opt.Workers = 1
	b, err := analysis.Run(context.Background(), d, opt)
	require.NoError(t, err)

	require.Len(t, a.Insights, 10)
	for i, in := range a.Insights {
		assert.Equal(t, i+1, in.ID)
	}
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Insights, b.Insights)
	assert.Equal(t, a.Attributes, b.Attributes)
	assert.Equal(t, a.Overview, b.Overview)
	assert.Equal(t, 1500, a.Summary.TotalReviews)
}

func TestRun_ProductView(t *testing.T) {
	d := synthDataset(600, 9)
	view := d.ForProduct("Calm Toner")
	rep, err := analysis.Run(context.Background(), view, analysis.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Calm Toner", rep.Product)
	assert.Equal(t, view.Len(), rep.Summary.TotalReviews)
	assert.Less(t, rep.Summary.TotalReviews, d.Len())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analysis.Run(ctx, synthDataset(50, 1), analysis.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	d := load(t, "timestamp,product_id,purchase_type,absorption_sentiment,overall_sentiment\n"+
		"2024-06-01,P1,repurchase,POSITIVE,POSITIVE\n"+
		"2024-06-10,P1,repurchase,NEGATIVE,NEGATIVE\n"+
		"2024-07-01,P1,first-purchase,POSITIVE,NEUTRAL\n")
	rep, err := analysis.Run(context.Background(), d.ForProduct("P1"), analysis.DefaultOptions())
	require.NoError(t, err)
	return rep
}

func TestReport_Markdown(t *testing.T) {
	md := sampleReport(t).Markdown()
	assert.Contains(t, md, "[DATASET SUMMARY]")
	assert.Contains(t, md, "Product: P1")
	assert.Contains(t, md, "Reviews: 3")
	assert.Contains(t, md, "Date range: 2024-06-01 ~ 2024-07-01")
	assert.Contains(t, md, "[OVERALL SENTIMENT TREND]")
	assert.Contains(t, md, "| month | positive | neutral | negative | total_reviews | positive_pct |")
	assert.Contains(t, md, "| 6 | 1 | 0 | 1 | 2 | 50.00 |")
	assert.Contains(t, md, "[INSIGHT 1: Absorption and repurchase]")
	assert.Contains(t, md, "| month | repurchase_reviews | absorption_positive | absorption_positive_pct |")
	assert.Contains(t, md, "| 6 | 2 | 1 | 50.00 |")
	assert.Contains(t, md, "[INSIGHT 5: Scent complaints by month]")
	assert.Contains(t, md, "Insufficient data: missing scent_sentiment")
	assert.Contains(t, md, "[ATTRIBUTE POSITIVE RATE (%)]")
	assert.Contains(t, md, "| 7 | 100.00 |")
	assert.Equal(t, 10, strings.Count(md, "[INSIGHT "))
}

func TestReport_RenderFormats(t *testing.T) {
	rep := sampleReport(t)

	b, err := rep.Render(analysis.FormatJSON)
	require.NoError(t, err)
	var js map[string]any
	require.NoError(t, json.Unmarshal(b, &js))
	assert.Equal(t, rep.RunID, js["run_id"])
	assert.Len(t, js["insights"], 10)

	b, err = rep.Render(analysis.FormatYAML)
	require.NoError(t, err)
	var ym map[string]any
	require.NoError(t, yaml.Unmarshal(b, &ym))
	assert.Equal(t, "month", ym["bucketing"])

	b, err = rep.Render(analysis.FormatXLSX)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	sheets := f.GetSheetList()
	assert.Equal(t, "Summary", sheets[0])
	assert.Contains(t, sheets, "I01 absorption-repurchase")
	assert.Contains(t, sheets, "I10 repurchase-resilience")
	assert.Contains(t, sheets, "Attributes")
	assert.Equal(t, "Overview", sheets[1])
	v, err := f.GetCellValue("Overview", "F7")
	require.NoError(t, err)
	assert.Equal(t, "50", v)
	v, err = f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
	v, err = f.GetCellValue("I05 scent-issues", "A1")
	require.NoError(t, err)
	assert.Equal(t, "insufficient data", v)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]analysis.Format{
		"":      analysis.FormatMarkdown,
		"MD":    analysis.FormatMarkdown,
		"json":  analysis.FormatJSON,
		"yml":   analysis.FormatYAML,
		"excel": analysis.FormatXLSX,
	} {
		got, err := analysis.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := analysis.ParseFormat("pdf")
	assert.Error(t, err)

	f, ok := analysis.FormatForPath("out/report.YAML")
	assert.True(t, ok)
	assert.Equal(t, analysis.FormatYAML, f)
	_, ok = analysis.FormatForPath("report.txt")
	assert.False(t, ok)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, analysis.Percent(5, 0))
	assert.Equal(t, 33.33, analysis.Percent(1, 3))
	assert.Equal(t, 100.0, analysis.Percent(4, 4))
}

func TestRatio_ZeroDenominatorMonths(t *testing.T) {
	d := load(t, "timestamp,overall_sentiment\n2024-03-01,POSITIVE\n")
	axis := analysis.NewAxis(analysis.BucketMonth, d.Reviews)
	rt := analysis.PositiveRate(d.Reviews, nil, dataset.AspectOverall, axis)
	require.Len(t, rt.Cells, 12)
	for i, c := range rt.Cells {
		if i == 2 {
			assert.Equal(t, analysis.Cell{Numerator: 1, Denominator: 1, Pct: 100}, c)
			continue
		}
		assert.Equal(t, analysis.Cell{}, c)
	}
}
