package services

import (
	"strings"
	"testing"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
)

func newResolver(t *testing.T) (*ResolverService, *testFixture) {
	t.Helper()
	db := newTestDB(t)
	catalog := seedCatalog(t, db)
	_, chat := seedChat(t, db, "+59170000001")

	catalogRepo := repositories.NewCatalogRepo(db)
	history := NewHistoryService(repositories.NewMessageRepo(db), testBusinessContext, 40)
	interests := NewInterestService(
		repositories.NewInterestRepo(db),
		catalogRepo,
		repositories.NewChatRepo(db),
		history,
		llm.NewServiceWithProvider(&fakeProvider{}),
	)
	resolver := NewResolverService(catalogRepo, interests, catalog.priceListID)
	return resolver, &testFixture{db: db, catalog: catalog, chat: chat}
}

func TestResolver_ProductTier_PriceAndStock(t *testing.T) {
	resolver, fx := newResolver(t)

	answer, ok, err := resolver.Resolve("precio de cuaderno a4", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatal("expected a catalog answer")
	}
	want := "Cuaderno A4: Bs. 25.50, stock disponible: 10"
	if answer != want {
		t.Fatalf("answer = %q, want %q", answer, want)
	}

	var count int64
	fx.db.Model(&models.ProductInterest{}).Where("chat_id = ?", fx.chat.ID).Count(&count)
	if count != 1 {
		t.Fatalf("product interests = %d, want 1", count)
	}
}

func TestResolver_ProductTier_NoPriceRow(t *testing.T) {
	resolver, fx := newResolver(t)

	answer, ok, err := resolver.Resolve("cuánto cuesta el pad 200 hojas", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatal("expected a catalog answer")
	}
	want := "No se encontró información para Pad 200 hojas."
	if answer != want {
		t.Fatalf("answer = %q, want %q", answer, want)
	}

	var count int64
	fx.db.Model(&models.ProductInterest{}).Where("chat_id = ?", fx.chat.ID).Count(&count)
	if count != 0 {
		t.Fatalf("product interests = %d, want 0 for unpriced product", count)
	}
}

func TestResolver_ProductBeatsCategory(t *testing.T) {
	resolver, fx := newResolver(t)

	// Mentions both a product and a category; the product tier wins.
	answer, ok, err := resolver.Resolve("quiero el cuaderno a4 de la sección cuadernos", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatal("expected a catalog answer")
	}
	if !strings.HasPrefix(answer, "Cuaderno A4: Bs. 25.50") {
		t.Fatalf("expected product answer, got %q", answer)
	}
}

func TestResolver_CategoryTier_FansOutInterests(t *testing.T) {
	resolver, fx := newResolver(t)

	answer, ok, err := resolver.Resolve("qué tienes de stickers", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatal("expected a catalog answer")
	}
	if !strings.HasPrefix(answer, "Los productos en la categoría Stickers son:") {
		t.Fatalf("unexpected answer %q", answer)
	}
	for _, name := range []string{"Sticker Vintage", "Stickers Retro"} {
		if !strings.Contains(answer, "- "+name) {
			t.Fatalf("answer missing %q: %q", name, answer)
		}
	}

	var count int64
	fx.db.Model(&models.ProductInterest{}).Where("chat_id = ?", fx.chat.ID).Count(&count)
	if count != 2 {
		t.Fatalf("product interests = %d, want one per listed product", count)
	}
}

func TestResolver_SummaryTier(t *testing.T) {
	resolver, fx := newResolver(t)

	answer, ok, err := resolver.Resolve("qué categorias manejan", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatal("expected a catalog answer")
	}
	if !strings.Contains(answer, "Cuadernos: 2 productos") {
		t.Fatalf("answer missing Cuadernos count: %q", answer)
	}
	if !strings.Contains(answer, "Stickers: 2 productos") {
		t.Fatalf("answer missing Stickers count: %q", answer)
	}
}

func TestResolver_NoMatchFallsThrough(t *testing.T) {
	resolver, fx := newResolver(t)

	answer, ok, err := resolver.Resolve("hola buenas tardes", fx.chat.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ok || answer != "" {
		t.Fatalf("expected fall-through, got ok=%v answer=%q", ok, answer)
	}
}

func TestResolver_InterestDedupedPerDay(t *testing.T) {
	resolver, fx := newResolver(t)

	for i := 0; i < 3; i++ {
		if _, _, err := resolver.Resolve("precio de cuaderno a4", fx.chat.ID); err != nil {
			t.Fatalf("resolve #%d: %v", i+1, err)
		}
	}

	var count int64
	fx.db.Model(&models.ProductInterest{}).Where("chat_id = ?", fx.chat.ID).Count(&count)
	if count != 1 {
		t.Fatalf("product interests = %d, want 1 after repeated asks", count)
	}
}
