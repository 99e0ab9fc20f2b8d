// Package intent classifies normalized customer utterances into the small
// set of catalog-wide question types that can be answered without semantic
// retrieval.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the recognized question type.
type Intent string

const (
	// IntentNone means no general question was recognized; the caller
	// should fall through to semantic retrieval.
	IntentNone Intent = ""
	// IntentProducts asks for the full product list.
	IntentProducts Intent = "productos"
	// IntentCategories asks for the category overview.
	IntentCategories Intent = "categorias"
	// IntentPromotions asks for active promotions.
	IntentPromotions Intent = "promociones"
	// IntentCategoryFiltered asks for products of one product family.
	IntentCategoryFiltered Intent = "categoria"
)

var (
	availabilityRe = regexp.MustCompile(`\b(productos|tienen|hay)\b`)
	familyRe       = regexp.MustCompile(`\b(stickers?|cuadernos?|marcadores?|hojas|micropen|bolígrafos?|estucheras?|correctores?)\b`)
	generalRe      = regexp.MustCompile(`(qué|que)\s+(productos|tienen|hay)`)
	categoryRefRe  = regexp.MustCompile(`(?:\bde\s+|\ben\s+)([\p{L}\p{N}_]+)`)
)

// Result carries the classified intent plus the extracted category token
// for category-filtered questions.
type Result struct {
	Intent   Intent
	Category string
}

// Classify inspects normalized (lower-cased, synonym-rewritten) text.
// Rule order is fixed: a family keyword combined with an availability verb
// beats the generic product question, which beats the keyword intents.
func Classify(text string) Result {
	text = strings.ToLower(text)

	switch {
	case availabilityRe.MatchString(text) && familyRe.MatchString(text):
		return Result{Intent: IntentCategoryFiltered, Category: extractCategory(text)}
	case generalRe.MatchString(text):
		return Result{Intent: IntentProducts}
	case strings.Contains(text, "categoría") || strings.Contains(text, "categorias"):
		return Result{Intent: IntentCategories}
	case strings.Contains(text, "promoción") || strings.Contains(text, "promociones"):
		return Result{Intent: IntentPromotions}
	}
	return Result{Intent: IntentNone}
}

// extractCategory pulls the category token for a category-filtered
// question: the matched family keyword when present, otherwise a
// "de X" / "en X" pattern, otherwise the last word of the utterance.
func extractCategory(text string) string {
	if m := familyRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := categoryRefRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	return strings.Trim(words[len(words)-1], "¿?¡!.,;:")
}
