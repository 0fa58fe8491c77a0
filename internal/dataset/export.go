package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteCSV writes the view as a flattened row-level table with the input
// header, encoded UTF-8 with a byte order mark.
func WriteCSV(w io.Writer, d *Dataset) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	if err := cw.Write(d.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	ncol := len(d.Header)
	for i := range d.Reviews {
		row := d.Reviews[i].Raw
		if len(row) > ncol {
			row = row[:ncol]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("flush encoder: %w", err)
	}
	return nil
}
