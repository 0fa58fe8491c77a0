package analysis

import (
	"strings"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Vocabulary holds the keyword lists the insight predicates match against.
// Substring lists match case-insensitively anywhere in the value; exact lists
// (StickyTexture, NoIrritation) must equal the trimmed value.
type Vocabulary struct {
	Repurchase    []string `mapstructure:"repurchase" yaml:"repurchase" json:"repurchase" validate:"min=1"`
	FirstPurchase []string `mapstructure:"first_purchase" yaml:"first_purchase" json:"first_purchase" validate:"min=1"`
	Plain         []string `mapstructure:"plain" yaml:"plain" json:"plain" validate:"min=1"`
	ValueForMoney []string `mapstructure:"value_for_money" yaml:"value_for_money" json:"value_for_money" validate:"min=1"`
	Oily          []string `mapstructure:"oily" yaml:"oily" json:"oily" validate:"min=1"`
	StickyTexture []string `mapstructure:"sticky_texture" yaml:"sticky_texture" json:"sticky_texture" validate:"min=1"`
	NoIrritation  []string `mapstructure:"no_irritation" yaml:"no_irritation" json:"no_irritation" validate:"min=1"`
}

// DefaultVocabulary carries the English terms and the Korean labels used by
// the upstream classifier.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Repurchase:    []string{"repurchase", "재구매"},
		FirstPurchase: []string{"first-purchase", "new", "첫구매", "신규"},
		Plain:         []string{"plain", "unremarkable", "무난"},
		ValueForMoney: []string{"value-for-money", "가성비"},
		Oily:          []string{"oily", "지성"},
		StickyTexture: []string{"viscous", "tacky", "점성", "쫀쫀"},
		NoIrritation:  []string{"none", "없음"},
	}
}

type matcher struct {
	repurchase, firstPurchase, plain, valueForMoney, oily, sticky, noIrritation []string
}

func newMatcher(v Vocabulary) matcher {
	return matcher{
		repurchase:    lowerAll(v.Repurchase),
		firstPurchase: lowerAll(v.FirstPurchase),
		plain:         lowerAll(v.Plain),
		valueForMoney: lowerAll(v.ValueForMoney),
		oily:          lowerAll(v.Oily),
		sticky:        lowerAll(v.StickyTexture),
		noIrritation:  lowerAll(v.NoIrritation),
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(v string, terms []string) bool {
	if v == "" {
		return false
	}
	v = strings.ToLower(v)
	for _, t := range terms {
		if strings.Contains(v, t) {
			return true
		}
	}
	return false
}

func equalsAny(v string, terms []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, t := range terms {
		if v == t {
			return true
		}
	}
	return false
}

func (m matcher) repurchased(r *dataset.Review) bool { return containsAny(r.PurchaseType, m.repurchase) }
func (m matcher) firstBuy(r *dataset.Review) bool { return containsAny(r.PurchaseType, m.firstPurchase) }
func (m matcher) plainSummary(r *dataset.Review) bool { return containsAny(r.Summary, m.plain) }
func (m matcher) valueSummary(r *dataset.Review) bool { return containsAny(r.Summary, m.valueForMoney) }
func (m matcher) oilySkin(r *dataset.Review) bool { return containsAny(r.SkinType, m.oily) }
func (m matcher) stickyTexture(r *dataset.Review) bool {
	return r.TextureValue != "" && equalsAny(r.TextureValue, m.sticky)
}

// irritated reports any irritation value other than "none", missing values included.
func (m matcher) irritated(r *dataset.Review) bool {
	return !equalsAny(r.IrritationValue, m.noIrritation)
}
