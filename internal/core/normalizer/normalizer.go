// Package normalizer rewrites colloquial customer vocabulary to the
// canonical catalog terms before any matching happens.
package normalizer

import (
	"regexp"
	"strings"
)

// Synonym maps one colloquial term to its canonical catalog form.
type Synonym struct {
	Colloquial string
	Canonical  string
}

// DefaultSynonyms is the stationery vocabulary observed in real customer
// chats. Order matters: the first entry that matches wins, so overlapping
// terms must stay in this order.
var DefaultSynonyms = []Synonym{
	{"libretas", "cuaderno"},
	{"libreta", "cuaderno"},
	{"adhesivos", "stickers"},
	{"pegatinas", "stickers"},
	{"adhesivo", "stickers"},
	{"lapiceros", "lápices de colores"},
	{"lapicero", "lápices de colores"},
	{"respuesto de hojas", "hojas"},
	{"respuestos", "hojas"},
	{"respuesto", "hojas"},
	{"hojitas", "hojas"},
	{"marcador", "marcadores"},
	{"marcadores stabilo", "bolígrafos"},
	{"lapiceras", "bolígrafos"},
	{"lapicera", "bolígrafos"},
	{"corrector", "correctores"},
	{"goma", "correctores"},
	{"estuche", "estucheras"},
	{"cartuchera", "estucheras"},
	{"porta lápiz", "estucheras"},
	{"porta lapiz", "estucheras"},
}

type rule struct {
	pattern   *regexp.Regexp
	canonical string
}

// Normalizer lower-cases text and replaces whole-word occurrences of each
// configured colloquial term with its canonical form. It has no side
// effects and is idempotent on already-canonical text.
type Normalizer struct {
	rules []rule
}

// New compiles a Normalizer from the given synonym table, preserving order.
func New(synonyms []Synonym) *Normalizer {
	rules := make([]rule, 0, len(synonyms))
	for _, s := range synonyms {
		// Whole-word, case handled by lower-casing the input first.
		p := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(s.Colloquial)) + `\b`)
		rules = append(rules, rule{pattern: p, canonical: s.Canonical})
	}
	return &Normalizer{rules: rules}
}

// NewDefault compiles the default stationery synonym table.
func NewDefault() *Normalizer {
	return New(DefaultSynonyms)
}

// Apply returns the lower-cased text with every colloquial term replaced.
func (n *Normalizer) Apply(text string) string {
	out := strings.ToLower(text)
	for _, r := range n.rules {
		out = r.pattern.ReplaceAllString(out, r.canonical)
	}
	return out
}
