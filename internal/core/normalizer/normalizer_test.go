package normalizer

import "testing"

func TestApply_ReplacesConfiguredSynonyms(t *testing.T) {
	n := NewDefault()

	cases := map[string]string{
		"tienen libretas?":               "tienen cuaderno?",
		"Busco PEGATINAS bonitas":        "busco stickers bonitas",
		"quiero un lapicero":             "quiero un lápices de colores",
		"precio del porta lápiz":         "precio del estucheras",
		"hay hojitas sueltas":            "hay hojas sueltas",
		"necesito una goma y una goma":   "necesito una correctores y una correctores",
		"sin sinónimos acá":              "sin sinónimos acá",
	}

	for in, want := range cases {
		if got := n.Apply(in); got != want {
			t.Errorf("Apply(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestApply_WholeWordOnly(t *testing.T) {
	n := NewDefault()

	// "gomaespuma" contains "goma" but is not a whole-word match.
	if got := n.Apply("venden gomaespuma?"); got != "venden gomaespuma?" {
		t.Errorf("partial word replaced: %q", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	n := NewDefault()

	inputs := []string{
		"tienen libretas y adhesivos?",
		"quiero marcadores stabilo",
		"precio del cuaderno a4",
	}
	for _, in := range inputs {
		once := n.Apply(in)
		twice := n.Apply(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestApply_OverlappingRulesCascadeInOrder(t *testing.T) {
	// Replacements run sequentially over the table: "marcador" rewrites
	// to "marcadores" first, and the later compound rule then matches
	// the rewritten text. Earlier rules feed later ones.
	n := New([]Synonym{
		{"marcador", "marcadores"},
		{"marcadores stabilo", "bolígrafos"},
	})

	if got := n.Apply("quiero un marcador stabilo"); got != "quiero un bolígrafos" {
		t.Errorf("cascade not applied in table order: %q", got)
	}
}
