package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
)

// ---------- test helpers ----------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&models.Customer{}, &models.Chat{}, &models.Message{},
		&models.Category{}, &models.Product{}, &models.PriceList{}, &models.ProductPrice{},
		&models.Promotion{},
		&models.ProductInterest{}, &models.CategoryInterest{}, &models.PromotionInterest{},
		&models.DeliveryRecord{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// testFixture bundles what most service tests need to assert against.
type testFixture struct {
	db      *gorm.DB
	catalog seededCatalog
	chat    models.Chat
}

// seededCatalog holds the entities tests refer back to.
type seededCatalog struct {
	priceListID uint
	cuadernos   models.Category
	stickers    models.Category
	cuadernoA4  models.Product
	padHojas    models.Product
	stickerOld  models.Product
	stickerNew  models.Product
}

func seedCatalog(t *testing.T, db *gorm.DB) seededCatalog {
	t.Helper()

	priceList := models.PriceList{Name: "Lista Minorista"}
	if err := db.Create(&priceList).Error; err != nil {
		t.Fatalf("seed price list: %v", err)
	}

	cuadernos := models.Category{Name: "Cuadernos"}
	stickers := models.Category{Name: "Stickers"}
	if err := db.Create(&cuadernos).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.Create(&stickers).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	cuadernoA4 := models.Product{Name: "Cuaderno A4", CategoryID: cuadernos.ID, Stock: 10, IsActive: true}
	padHojas := models.Product{Name: "Pad 200 hojas", CategoryID: cuadernos.ID, Stock: 5, IsActive: true}
	stickerOld := models.Product{Name: "Sticker Vintage", CategoryID: stickers.ID, Stock: 30, IsActive: true}
	stickerNew := models.Product{Name: "Stickers Retro", CategoryID: stickers.ID, Stock: 12, IsActive: true}
	for _, p := range []*models.Product{&cuadernoA4, &padHojas, &stickerOld, &stickerNew} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	// Pad 200 hojas deliberately has no price row
	prices := []models.ProductPrice{
		{ProductID: cuadernoA4.ID, PriceListID: priceList.ID, Amount: 25.50},
		{ProductID: stickerOld.ID, PriceListID: priceList.ID, Amount: 8.00},
		{ProductID: stickerNew.ID, PriceListID: priceList.ID, Amount: 12.00},
	}
	if err := db.Create(&prices).Error; err != nil {
		t.Fatalf("seed prices: %v", err)
	}

	return seededCatalog{
		priceListID: priceList.ID,
		cuadernos:   cuadernos,
		stickers:    stickers,
		cuadernoA4:  cuadernoA4,
		padHojas:    padHojas,
		stickerOld:  stickerOld,
		stickerNew:  stickerNew,
	}
}

func seedChat(t *testing.T, db *gorm.DB, phone string) (models.Customer, models.Chat) {
	t.Helper()
	customer := models.Customer{Phone: phone}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	chat := models.Chat{CustomerID: customer.ID, State: models.ChatStateOpen}
	if err := db.Create(&chat).Error; err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	return customer, chat
}

// fakeProvider is an in-memory llm.Provider. Replies are consumed in
// order; the last one repeats.
type fakeProvider struct {
	replies     []string
	err         error
	calls       int
	gotMessages [][]llm.Message
	gotTemp     []float32
}

func (f *fakeProvider) Complete(_ context.Context, messages []llm.Message, temperature float32) (string, error) {
	f.calls++
	f.gotMessages = append(f.gotMessages, messages)
	f.gotTemp = append(f.gotTemp, temperature)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

type fakeRetriever struct {
	docs    []string
	err     error
	calls   int
	gotText string
}

func (f *fakeRetriever) Query(_ context.Context, text string) ([]string, error) {
	f.calls++
	f.gotText = text
	return f.docs, f.err
}
