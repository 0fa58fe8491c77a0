package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
)

// LoadOptions controls how raw tables are read from disk.
type LoadOptions struct {
	// Delimiter for CSV. If 0, sniffed from the file name and header line.
	Delimiter rune
	// MaxRows limits rows kept; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. SheetName wins over SheetIndex (1-based).
	SheetName  string
	SheetIndex int
}

// Loader reads one file format into a raw Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates a file format no loader accepts.
var ErrUnsupported = errors.New("unsupported dataset format")

// ReadTable selects a loader by file name and returns the raw table.
func ReadTable(path string, opt LoadOptions) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			t, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			if t.Name == "" {
				t.Name = filepath.Base(path)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

// Load reads and normalizes a review dataset.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	t, err := ReadTable(path, opt)
	if err != nil {
		return nil, err
	}
	return Normalize(t), nil
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
