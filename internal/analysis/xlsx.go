package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteXLSX writes the report as a workbook: summary and overview sheets,
// one sheet per insight and one for the attribute table.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	s := r.Summary
	summaryRows := [][]interface{}{
		{"file", r.Name},
		{"product", r.Product},
		{"bucketing", string(r.Bucketing)},
		{"total_reviews", s.TotalReviews},
		{"date_range", s.DateRange},
		{"positive_ratio", s.PositiveRatio},
		{"neutral_ratio", s.NeutralRatio},
		{"negative_ratio", s.NegativeRatio},
	}
	for _, warn := range r.Warnings {
		summaryRows = append(summaryRows, []interface{}{"warning", warn})
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return err
	}

	const overviewSheet = "Overview"
	if _, err := f.NewSheet(overviewSheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", overviewSheet, err)
	}
	if r.Overview.Insufficient {
		if err := writeRows(f, overviewSheet, [][]interface{}{{"insufficient data", strings.Join(r.Overview.Missing, ", ")}}); err != nil {
			return err
		}
	} else if err := writeRows(f, overviewSheet, tableRows(r.Overview.Table, r.Bucketing)); err != nil {
		return err
	}

	for _, in := range r.Insights {
		sheet := sheetName(fmt.Sprintf("I%02d %s", in.ID, in.Key))
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		if in.Insufficient {
			if err := writeRows(f, sheet, [][]interface{}{{"insufficient data", strings.Join(in.Missing, ", ")}}); err != nil {
				return err
			}
			continue
		}
		rows := tableRows(in.Table, r.Bucketing)
		if len(in.Dispersion) > 0 {
			rows = append(rows, nil, []interface{}{"series", "std"})
			for _, d := range in.Dispersion {
				rows = append(rows, []interface{}{d.Series, d.Std})
			}
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	const attrSheet = "Attributes"
	if _, err := f.NewSheet(attrSheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", attrSheet, err)
	}
	if r.Attributes.Insufficient {
		if err := writeRows(f, attrSheet, [][]interface{}{{"insufficient data", strings.Join(r.Attributes.Missing, ", ")}}); err != nil {
			return err
		}
	} else if err := writeRows(f, attrSheet, tableRows(r.Attributes.Table, r.Bucketing)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func tableRows(t *Table, mode Bucketing) [][]interface{} {
	key := "month"
	if mode == BucketYearMonth {
		key = "year_month"
	}
	header := []interface{}{key}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	rows := [][]interface{}{header}
	for _, row := range t.Rows {
		line := []interface{}{row.Bucket.String()}
		for _, v := range row.Values {
			line = append(line, v)
		}
		rows = append(rows, line)
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// sheetName trims to Excel's 31 character limit.
func sheetName(s string) string {
	if len(s) > 31 {
		return s[:31]
	}
	return s
}
