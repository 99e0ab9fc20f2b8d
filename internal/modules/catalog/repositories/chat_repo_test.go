package repositories

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
)

func newChatDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:chatrepo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&models.Customer{}, &models.Chat{}, &models.Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newChatCustomer(t *testing.T, db *gorm.DB, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{Phone: phone}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func TestChatRepo_EnsureOpenChat_ReusesOpenChat(t *testing.T) {
	db := newChatDB(t)
	repo := NewChatRepo(db)
	customer := newChatCustomer(t, db, "+59175000001")

	first, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("got two open chats: %s, %s", first.ID, second.ID)
	}
}

func TestChatRepo_EnsureOpenChat_NewAfterClose(t *testing.T) {
	db := newChatDB(t)
	repo := NewChatRepo(db)
	customer := newChatCustomer(t, db, "+59175000002")

	first, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := repo.Close(first.ID); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("ensure after close: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("closed chat was reused")
	}
	if second.State != models.ChatStateOpen {
		t.Fatalf("state = %q, want open", second.State)
	}
}

func TestChatRepo_UpdateLastGreeted_RoundTrips(t *testing.T) {
	db := newChatDB(t)
	repo := NewChatRepo(db)
	customer := newChatCustomer(t, db, "+59175000003")

	chat, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if chat.GreetedOn(time.Now()) {
		t.Fatal("fresh chat reports greeted")
	}

	now := time.Now()
	if err := repo.UpdateLastGreeted(chat.ID, now); err != nil {
		t.Fatalf("update last greeted: %v", err)
	}

	// The greeted timestamp must survive a real database read, not just
	// the in-memory struct.
	reread, err := repo.EnsureOpenChat(customer.ID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.LastGreetedAt == nil {
		t.Fatal("last_greeted_at not persisted")
	}
	if !reread.GreetedOn(now) {
		t.Fatalf("GreetedOn = false for %v after greeting at %v", now, *reread.LastGreetedAt)
	}
	if reread.GreetedOn(now.Add(24 * time.Hour)) {
		t.Fatal("greeting leaked into the next day")
	}
}
