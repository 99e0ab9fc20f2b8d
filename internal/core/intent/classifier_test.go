package intent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		text     string
		want     Intent
		category string
	}{
		{"¿qué stickers tienen?", IntentCategoryFiltered, "stickers"},
		{"hay cuadernos de dibujo?", IntentCategoryFiltered, "cuadernos"},
		{"tienen marcadores?", IntentCategoryFiltered, "marcadores"},
		{"¿qué productos tienen?", IntentProducts, ""},
		{"que hay disponible", IntentProducts, ""},
		{"cuáles son sus categorias", IntentCategories, ""},
		{"qué categoría me recomiendas", IntentCategories, ""},
		{"tienen promociones?", IntentPromotions, ""},
		{"hay alguna promoción vigente", IntentPromotions, ""},
		{"quiero pagar mi pedido", IntentNone, ""},
		{"hola buenos días", IntentNone, ""},
	}

	for _, tc := range cases {
		got := Classify(tc.text)
		if got.Intent != tc.want {
			t.Errorf("Classify(%q).Intent = %q; want %q", tc.text, got.Intent, tc.want)
			continue
		}
		if tc.category != "" && got.Category != tc.category {
			t.Errorf("Classify(%q).Category = %q; want %q", tc.text, got.Category, tc.category)
		}
	}
}

func TestClassify_FamilyBeatsGeneralQuestion(t *testing.T) {
	// Both the general pattern and a family keyword match; the filtered
	// intent wins because its rule is evaluated first.
	got := Classify("qué hay de estucheras")
	if got.Intent != IntentCategoryFiltered {
		t.Fatalf("Intent = %q; want %q", got.Intent, IntentCategoryFiltered)
	}
	if got.Category != "estucheras" {
		t.Fatalf("Category = %q; want estucheras", got.Category)
	}
}

func TestExtractCategory_Fallbacks(t *testing.T) {
	// No family keyword and no de/en pattern: last word, punctuation trimmed.
	if got := extractCategory("productos acuarelas?"); got != "acuarelas" {
		t.Errorf("last-word fallback = %q; want acuarelas", got)
	}
	// de/en pattern without a family keyword.
	if got := extractCategory("productos de escritorio"); got != "escritorio" {
		t.Errorf("de-pattern = %q; want escritorio", got)
	}
}
