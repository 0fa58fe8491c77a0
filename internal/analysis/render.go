package analysis

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/reviewlens/internal/utils"
)

// Format is an output encoding for reports.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXLSX     Format = "xlsx"
)

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use markdown|json|yaml|xlsx)", s)
}

// FormatForPath guesses a format from an output file extension.
func FormatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML, true
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX, true
	case strings.HasSuffix(lower, ".md"):
		return FormatMarkdown, true
	}
	return "", false
}

// Render encodes the report in the given format.
func (r *Report) Render(f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(r.Markdown()), nil
	case FormatJSON:
		return utils.PrettyJSON(r)
	case FormatYAML:
		b, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	case FormatXLSX:
		var buf bytes.Buffer
		if err := r.WriteXLSX(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", f)
}
