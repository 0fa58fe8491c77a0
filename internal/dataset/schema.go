package dataset

import (
	"strings"
)

// Field identifies a normalized review column.
type Field int

const (
	FieldTimestamp Field = iota
	FieldProduct
	// Sentiment fields, in Aspect order.
	FieldOverall
	FieldAbsorption
	FieldFinish
	FieldMoisture
	FieldScent
	FieldTexture
	FieldIrritation
	FieldSoothing
	FieldTextureValue
	FieldIrritationValue
	FieldPurchaseType
	FieldSkinType
	FieldSummary

	numFields
)

var fieldNames = [numFields]string{
	"timestamp",
	"product_id",
	"overall_sentiment",
	"absorption_sentiment",
	"finish_sentiment",
	"moisture_sentiment",
	"scent_sentiment",
	"texture_sentiment",
	"irritation_sentiment",
	"soothing_sentiment",
	"texture_value",
	"irritation_value",
	"purchase_type",
	"skin_type",
	"one_line_summary",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// Schema is the set of fields present in a loaded dataset.
type Schema uint32

func (s Schema) Has(f Field) bool { return s&(1<<uint(f)) != 0 }

func (s Schema) with(f Field) Schema { return s | 1<<uint(f) }

// Missing returns the subset of fs absent from the schema, in argument order.
func (s Schema) Missing(fs ...Field) []Field {
	var out []Field
	for _, f := range fs {
		if !s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Fields lists present fields in declaration order.
func (s Schema) Fields() []Field {
	var out []Field
	for f := Field(0); f < numFields; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// FieldNames renders fields by column name.
func FieldNames(fs []Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

// Header aliases. Keys are lower-cased; canonical names are added in init.
var columnAliases = map[string]Field{
	"review_date":     FieldTimestamp,
	"date":            FieldTimestamp,
	"리뷰등록일":           FieldTimestamp,
	"product":         FieldProduct,
	"brand":           FieldProduct,
	"브랜드명":            FieldProduct,
	"skin_type_final": FieldSkinType,
	"summary":         FieldSummary,
}

func init() {
	for f := Field(0); f < numFields; f++ {
		columnAliases[fieldNames[f]] = f
	}
}

// ResolveColumn maps a header cell to a Field.
func ResolveColumn(name string) (Field, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "\ufeff")
	f, ok := columnAliases[key]
	return f, ok
}

// Aspect is a reviewed product dimension carrying a sentiment label.
type Aspect int

const (
	AspectOverall Aspect = iota
	AspectAbsorption
	AspectFinish
	AspectMoisture
	AspectScent
	AspectTexture
	AspectIrritation
	AspectSoothing

	NumAspects = 8
)

var aspectNames = [NumAspects]string{
	"overall", "absorption", "finish", "moisture", "scent", "texture", "irritation", "soothing",
}

func (a Aspect) String() string {
	if a < 0 || a >= NumAspects {
		return "unknown"
	}
	return aspectNames[a]
}

// Field returns the sentiment column backing the aspect.
func (a Aspect) Field() Field { return FieldOverall + Field(a) }

// Sentiment is a per-aspect label. After normalization it is always one of
// Positive, Neutral or Negative.
type Sentiment string

const (
	Positive Sentiment = "POSITIVE"
	Neutral  Sentiment = "NEUTRAL"
	Negative Sentiment = "NEGATIVE"
)

var sentimentAliases = map[string]Sentiment{
	"POSITIVE": Positive,
	"POS":      Positive,
	"긍정":       Positive,
	"NEUTRAL":  Neutral,
	"NEU":      Neutral,
	"중립":       Neutral,
	"NEGATIVE": Negative,
	"NEG":      Negative,
	"부정":       Negative,
}

// ParseSentiment normalizes a raw label. Missing values become Neutral.
// ok is false when a non-empty value was not recognised; it still maps to Neutral.
func ParseSentiment(raw string) (s Sentiment, ok bool) {
	if isMissing(raw) {
		return Neutral, true
	}
	if s, found := sentimentAliases[strings.ToUpper(strings.TrimSpace(raw))]; found {
		return s, true
	}
	return Neutral, false
}

func isMissing(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "null")
}
