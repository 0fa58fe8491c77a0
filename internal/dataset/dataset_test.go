package dataset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

const reviewsCSV = "timestamp,product_id,overall_sentiment,absorption_sentiment,skin_type,purchase_type,one_line_summary\n" +
	"2024-01-15,P1,POSITIVE,POSITIVE,oily,repurchase,good\n" +
	"2024-01-20,P2,negative,NEU,,first-purchase,plain\n" +
	"not-a-date,P1,긍정,부정,dry,nan,ok\n" +
	"2024-07-02,P1,weird,POSITIVE,dry,repurchase,fine\n"

func parse(t *testing.T, data string) *dataset.Dataset {
	t.Helper()
	tbl, err := dataset.ParseCSV("reviews.csv", []byte(data), dataset.LoadOptions{})
	require.NoError(t, err)
	return dataset.Normalize(tbl)
}

func TestNormalize_LabelsAndCategoricals(t *testing.T) {
	d := parse(t, reviewsCSV)
	require.Equal(t, 4, d.Len())

	assert.True(t, d.Schema.Has(dataset.FieldTimestamp))
	assert.True(t, d.Schema.Has(dataset.FieldAbsorption))
	assert.False(t, d.Schema.Has(dataset.FieldMoisture))

	r0 := d.Reviews[0]
	assert.True(t, r0.HasTime)
	assert.Equal(t, 2024, r0.Year)
	assert.Equal(t, 1, r0.Month)
	assert.Equal(t, dataset.Positive, r0.Sentiment(dataset.AspectOverall))

	r1 := d.Reviews[1]
	assert.Equal(t, dataset.Negative, r1.Sentiment(dataset.AspectOverall))
	assert.Equal(t, dataset.Neutral, r1.Sentiment(dataset.AspectAbsorption))
	assert.Equal(t, dataset.Unclassified, r1.SkinType)

	r2 := d.Reviews[2]
	assert.False(t, r2.HasTime)
	assert.Zero(t, r2.Month)
	assert.Equal(t, dataset.Positive, r2.Sentiment(dataset.AspectOverall))
	assert.Equal(t, dataset.Negative, r2.Sentiment(dataset.AspectAbsorption))
	assert.Equal(t, dataset.Unclassified, r2.PurchaseType)

	// absent column defaults to neutral
	assert.Equal(t, dataset.Neutral, r0.Sentiment(dataset.AspectMoisture))
	// unrecognised label defaults to neutral
	assert.Equal(t, dataset.Neutral, d.Reviews[3].Sentiment(dataset.AspectOverall))

	require.Len(t, d.Warnings, 2)
	assert.Contains(t, d.Warnings[0], "1 rows have an unparseable timestamp")
	assert.Contains(t, d.Warnings[1], "1 sentiment labels were not recognised")
}

func TestNormalize_Years(t *testing.T) {
	d := parse(t, "timestamp,overall_sentiment\n2024-05-01,POSITIVE\n2023-05-01,NEGATIVE\n,NEUTRAL\n")
	assert.Equal(t, []int{2023, 2024}, d.Years())
	assert.Empty(t, d.Warnings)
}

func TestNormalize_TimestampLayouts(t *testing.T) {
	d := parse(t, "timestamp,overall_sentiment\n"+
		"2024-06-15T10:00:00,POSITIVE\n"+
		"2024-06-15T10:00:00Z,POSITIVE\n"+
		"2024-06-15 10:00:00.000,POSITIVE\n"+
		"20240615,POSITIVE\n"+
		"2024-06-15,POSITIVE\n"+
		"2024.6.15,POSITIVE\n"+
		"06/15/2024,POSITIVE\n")
	assert.Empty(t, d.Warnings)
	for i := range d.Reviews {
		r := &d.Reviews[i]
		require.True(t, r.HasTime, "row %d", i)
		assert.Equal(t, 2024, r.Year, "row %d", i)
		assert.Equal(t, 6, r.Month, "row %d", i)
		assert.Equal(t, 15, r.Time.Day(), "row %d", i)
	}
}

func TestResolveColumn_Aliases(t *testing.T) {
	cases := map[string]dataset.Field{
		"timestamp":         dataset.FieldTimestamp,
		"리뷰등록일":             dataset.FieldTimestamp,
		"  BRAND ":          dataset.FieldProduct,
		"브랜드명":              dataset.FieldProduct,
		"SKIN_TYPE_FINAL":   dataset.FieldSkinType,
		"\ufeffreview_date": dataset.FieldTimestamp,
	}
	for in, want := range cases {
		got, ok := dataset.ResolveColumn(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := dataset.ResolveColumn("rating")
	assert.False(t, ok)
}

func TestParseCSV_BOMAndEUCKRDecodeIdentically(t *testing.T) {
	plain := "리뷰등록일,브랜드명,overall_sentiment\n2024-03-01,토너A,긍정\n2024-03-02,토너B,부정\n"

	bom := append([]byte("\ufeff"), plain...)
	euckr, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(plain))
	require.NoError(t, err)

	a, err := dataset.ParseCSV("a.csv", []byte(plain), dataset.LoadOptions{})
	require.NoError(t, err)
	b, err := dataset.ParseCSV("b.csv", bom, dataset.LoadOptions{})
	require.NoError(t, err)
	c, err := dataset.ParseCSV("c.csv", euckr, dataset.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "utf-8", a.Encoding)
	assert.Equal(t, "euc-kr", c.Encoding)
	assert.Equal(t, a.Header, b.Header)
	assert.Equal(t, a.Header, c.Header)
	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Rows, c.Rows)

	d := dataset.Normalize(c)
	assert.Equal(t, []string{"토너A", "토너B"}, d.Products())
	assert.Equal(t, dataset.Negative, d.Reviews[1].Sentiment(dataset.AspectOverall))
}

func TestParseCSV_DelimiterAndMaxRows(t *testing.T) {
	data := "timestamp;overall_sentiment\n2024-01-01;POSITIVE\n2024-01-02;NEGATIVE\n2024-01-03;NEUTRAL\n"
	tbl, err := dataset.ParseCSV("x.csv", []byte(data), dataset.LoadOptions{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"timestamp", "overall_sentiment"}, tbl.Header)
	assert.Len(t, tbl.Rows, 2)
	assert.Equal(t, 3, tbl.Total)

	d := dataset.Normalize(tbl)
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0], "processed only 2/3 rows")
}

func TestForProduct_DoesNotMutateSource(t *testing.T) {
	d := parse(t, reviewsCSV)
	assert.Equal(t, []string{"P1", "P2"}, d.Products())

	v := d.ForProduct("P1")
	assert.Equal(t, "P1", v.Product)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 4, d.Len())
	assert.Empty(t, d.Product)

	all := d.ForProduct("missing")
	assert.Empty(t, all.Product)
	assert.Equal(t, 4, all.Len())

	// appending to a full view must not write into the source backing array
	all.Reviews = append(all.Reviews, dataset.Review{ProductID: "X"})
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"P1", "P2"}, d.Products())
}

func TestForProduct_NoProductColumn(t *testing.T) {
	d := parse(t, "timestamp,overall_sentiment\n2024-01-01,POSITIVE\n")
	assert.Nil(t, d.Products())
	v := d.ForProduct("P1")
	assert.Equal(t, 1, v.Len())
	assert.Empty(t, v.Product)
}

func TestWriteCSV_BOMRoundTrip(t *testing.T) {
	d := parse(t, reviewsCSV).ForProduct("P1")
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, d))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\xef\xbb\xbf")))

	back, err := dataset.ParseCSV("back.csv", buf.Bytes(), dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, d.Header, back.Header)
	require.Len(t, back.Rows, 3)
	assert.Equal(t, d.Reviews[2].Raw, back.Rows[2])
}

func TestLoad_XLSXSheetSelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Notes"))
	_, err := f.NewSheet("Reviews")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"timestamp", "product_id", "overall_sentiment"},
		{"2024-02-01", "P1", "POSITIVE"},
		{"2024-02-03", "P2", "NEGATIVE"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Reviews", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	d, err := dataset.Load(path, dataset.LoadOptions{SheetName: "reviews"})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"P1", "P2"}, d.Products())

	d, err = dataset.Load(path, dataset.LoadOptions{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	_, err = dataset.Load(path, dataset.LoadOptions{SheetName: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Notes, Reviews")
}

func TestLoad_Unsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reviews.parquet")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	_, err := dataset.Load(p, dataset.LoadOptions{})
	assert.ErrorIs(t, err, dataset.ErrUnsupported)
}

func TestFiltered_MonthsSentimentSkinTypeNewestFirst(t *testing.T) {
	d := parse(t, "timestamp,overall_sentiment,skin_type\n"+
		"2024-06-03,POSITIVE,oily\n"+
		"2024-07-20,NEGATIVE,dry\n"+
		"2024-06-28,POSITIVE,Oily\n"+
		",POSITIVE,oily\n"+
		"2024-03-01,POSITIVE,oily\n"+
		"2024-07-02,positive,\n")

	f, err := dataset.NewFilter([]int{6, 7}, []string{"긍정"}, []string{"oily", "unclassified"})
	require.NoError(t, err)
	view := d.Filtered(f)
	require.Equal(t, 3, view.Len())
	assert.Equal(t, "2024-07-02", view.Reviews[0].Time.Format("2006-01-02"))
	assert.Equal(t, "2024-06-28", view.Reviews[1].Time.Format("2006-01-02"))
	assert.Equal(t, "2024-06-03", view.Reviews[2].Time.Format("2006-01-02"))
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, "2024-06-03", d.Reviews[0].Time.Format("2006-01-02"))

	all := d.Filtered(dataset.Filter{})
	require.Equal(t, 6, all.Len())
	assert.Equal(t, "2024-07-20", all.Reviews[0].Time.Format("2006-01-02"))
	assert.False(t, all.Reviews[5].HasTime)

	_, err = dataset.NewFilter([]int{13}, nil, nil)
	assert.Error(t, err)
	_, err = dataset.NewFilter(nil, []string{"great"}, nil)
	assert.Error(t, err)
	_, err = dataset.NewFilter(nil, []string{"nan"}, nil)
	assert.Error(t, err)
	empty, err := dataset.NewFilter(nil, []string{" "}, []string{""})
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}
