package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/vector"
)

type fakeSearcher struct {
	gotCollection string
	gotQuery      string
	gotLimit      int
	results       []vector.SearchResult
	err           error
}

func (f *fakeSearcher) Search(_ context.Context, collection, query string, limit int) ([]vector.SearchResult, error) {
	f.gotCollection = collection
	f.gotQuery = query
	f.gotLimit = limit
	return f.results, f.err
}

func TestQueryReturnsDocumentTexts(t *testing.T) {
	fake := &fakeSearcher{
		results: []vector.SearchResult{
			{ID: "a", Score: 0.9, Payload: map[string]interface{}{"text": "Producto: Cuaderno A4"}},
			{ID: "b", Score: 0.7, Payload: map[string]interface{}{"text": "Producto: Stickers vinilo"}},
		},
	}
	r := NewRetriever(fake, "productos_marketing", 3)

	docs, err := r.Query(context.Background(), "algo para escribir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0] != "Producto: Cuaderno A4" {
		t.Errorf("unexpected first doc: %q", docs[0])
	}
	if fake.gotCollection != "productos_marketing" {
		t.Errorf("searched wrong collection: %q", fake.gotCollection)
	}
	if fake.gotLimit != 3 {
		t.Errorf("expected topK 3, got %d", fake.gotLimit)
	}
}

func TestQuerySkipsHitsWithoutText(t *testing.T) {
	fake := &fakeSearcher{
		results: []vector.SearchResult{
			{ID: "a", Payload: map[string]interface{}{"text": "doc"}},
			{ID: "b", Payload: map[string]interface{}{}},
			{ID: "c", Payload: nil},
		},
	}
	r := NewRetriever(fake, "c", 0)

	docs, err := r.Query(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if fake.gotLimit != 3 {
		t.Errorf("expected default topK 3, got %d", fake.gotLimit)
	}
}

func TestQueryPropagatesSearchError(t *testing.T) {
	fake := &fakeSearcher{err: errors.New("qdrant down")}
	r := NewRetriever(fake, "c", 3)

	if _, err := r.Query(context.Background(), "q"); err == nil {
		t.Fatal("expected error")
	}
}

func TestProductCardDocument(t *testing.T) {
	card := ProductCard{
		ID:          "0f2a6d0e-9b1c-4b8f-8d7a-1c2d3e4f5a6b",
		Name:        "Cuaderno A4",
		Category:    "cuadernos",
		Description: "Cuaderno anillado de 100 hojas",
		Price:       25.5,
		Stock:       10,
		Promotions:  []string{"2x1 en cuadernos"},
	}

	doc := card.Document()
	if doc.ID != card.ID {
		t.Errorf("expected point ID %q, got %q", card.ID, doc.ID)
	}
	for _, want := range []string{
		"Producto: Cuaderno A4",
		"Precio: Bs. 25.50",
		"Stock disponible: 10",
		"Promociones: 2x1 en cuadernos",
	} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("document text missing %q:\n%s", want, doc.Text)
		}
	}
	if doc.Metadata["categoria"] != "cuadernos" {
		t.Errorf("unexpected categoria metadata: %v", doc.Metadata["categoria"])
	}
}

func TestProductCardDocumentNoPromotions(t *testing.T) {
	doc := ProductCard{ID: "x", Name: "Micropen 0.5", Category: "marcadores"}.Document()
	if !strings.Contains(doc.Text, "Promociones: ninguna") {
		t.Errorf("expected 'ninguna' placeholder:\n%s", doc.Text)
	}
}
