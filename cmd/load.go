package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// loadFlags are the input flags shared by every command that reads a dataset.
type loadFlags struct {
	delimiter  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func (lf *loadFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	fs.IntVar(&lf.maxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
	fs.StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	fs.IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func (lf *loadFlags) options() (dataset.LoadOptions, error) {
	opt := dataset.LoadOptions{
		MaxRows:    lf.maxRows,
		SheetName:  lf.sheetName,
		SheetIndex: lf.sheetIndex,
	}
	switch strings.ToLower(lf.delimiter) {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", lf.delimiter)
	}
	return opt, nil
}

// loadDataset reads and normalizes path, logging normalization warnings.
func loadDataset(path string, lf *loadFlags) (*dataset.Dataset, error) {
	opt, err := lf.options()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("file", ds.Name).
		Int("reviews", ds.Len()).
		Strs("columns", dataset.FieldNames(ds.Schema.Fields())).
		Msg("dataset loaded")
	for _, w := range ds.Warnings {
		log.Warn().Str("file", ds.Name).Msg(w)
	}
	return ds, nil
}

// productView narrows ds to product, warning when the id is unknown.
func productView(ds *dataset.Dataset, product string) *dataset.Dataset {
	view := ds.ForProduct(product)
	if product != "" && view.Product == "" {
		log.Warn().Str("product", product).Msg("product not found; using all reviews")
	}
	return view
}
