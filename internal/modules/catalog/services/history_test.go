package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
)

const testBusinessContext = "Eres el asistente virtual de una papelería."

func TestHistoryService_Build_RolesAndOrder(t *testing.T) {
	db := newTestDB(t)
	_, chat := seedChat(t, db, "+59173000001")

	turns := []models.Message{
		{ChatID: chat.ID, Sender: models.SenderCustomer, Kind: models.KindText, Content: "hola"},
		{ChatID: chat.ID, Sender: models.SenderSystem, Kind: models.KindText, Content: "¡Hola!"},
		{ChatID: chat.ID, Sender: models.SenderAgent, Kind: models.KindText, Content: "¿Te ayudo con algo más?"},
	}
	for i := range turns {
		if err := db.Create(&turns[i]).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	svc := NewHistoryService(repositories.NewMessageRepo(db), testBusinessContext, 40)
	history, err := svc.Build(chat.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(history) != 4 {
		t.Fatalf("history turns = %d, want context plus three turns", len(history))
	}
	if history[0].Role != llm.RoleSystem || history[0].Content != testBusinessContext {
		t.Fatalf("first turn = %+v, want business context", history[0])
	}
	wantRoles := []string{llm.RoleUser, llm.RoleAssistant, llm.RoleAssistant}
	for i, want := range wantRoles {
		if history[i+1].Role != want {
			t.Fatalf("turn %d role = %s, want %s", i+1, history[i+1].Role, want)
		}
	}
	if history[1].Content != "hola" || history[3].Content != "¿Te ayudo con algo más?" {
		t.Fatal("turns out of order")
	}
}

func TestHistoryService_BuildDay_CustomSystemTurn(t *testing.T) {
	db := newTestDB(t)
	_, chat := seedChat(t, db, "+59173000003")

	turns := []models.Message{
		{ChatID: chat.ID, Sender: models.SenderCustomer, Kind: models.KindText, Content: "busco stickers"},
		{ChatID: chat.ID, Sender: models.SenderSystem, Kind: models.KindText, Content: "Tenemos varios modelos."},
	}
	for i := range turns {
		if err := db.Create(&turns[i]).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	svc := NewHistoryService(repositories.NewMessageRepo(db), testBusinessContext, 40)
	history, err := svc.BuildDay(chat.ID, time.Now(), "Detecta los intereses del día.")
	if err != nil {
		t.Fatalf("build day: %v", err)
	}

	if len(history) != 3 {
		t.Fatalf("history turns = %d, want system plus two turns", len(history))
	}
	if history[0].Role != llm.RoleSystem || history[0].Content != "Detecta los intereses del día." {
		t.Fatalf("first turn = %+v, want custom system turn", history[0])
	}
	if history[1].Role != llm.RoleUser || history[2].Role != llm.RoleAssistant {
		t.Fatalf("roles = %s, %s", history[1].Role, history[2].Role)
	}
}

func TestHistoryService_BuildDay_WindowsToMostRecent(t *testing.T) {
	db := newTestDB(t)
	_, chat := seedChat(t, db, "+59173000004")

	for i := 1; i <= 6; i++ {
		msg := models.Message{
			ChatID:  chat.ID,
			Sender:  models.SenderCustomer,
			Kind:    models.KindText,
			Content: fmt.Sprintf("turno %d", i),
		}
		if err := db.Create(&msg).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	svc := NewHistoryService(repositories.NewMessageRepo(db), testBusinessContext, 2)
	history, err := svc.BuildDay(chat.ID, time.Now(), "instrucción")
	if err != nil {
		t.Fatalf("build day: %v", err)
	}

	if len(history) != 3 {
		t.Fatalf("history turns = %d, want system plus window of 2", len(history))
	}
	if history[1].Content != "turno 5" || history[2].Content != "turno 6" {
		t.Fatalf("window kept wrong turns: %q, %q", history[1].Content, history[2].Content)
	}
}

func TestHistoryService_Build_WindowsToMostRecent(t *testing.T) {
	db := newTestDB(t)
	_, chat := seedChat(t, db, "+59173000002")

	for i := 1; i <= 10; i++ {
		msg := models.Message{
			ChatID:  chat.ID,
			Sender:  models.SenderCustomer,
			Kind:    models.KindText,
			Content: fmt.Sprintf("mensaje %d", i),
		}
		if err := db.Create(&msg).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	svc := NewHistoryService(repositories.NewMessageRepo(db), testBusinessContext, 3)
	history, err := svc.Build(chat.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(history) != 4 {
		t.Fatalf("history turns = %d, want context plus window of 3", len(history))
	}
	want := []string{"mensaje 8", "mensaje 9", "mensaje 10"}
	for i, content := range want {
		if history[i+1].Content != content {
			t.Fatalf("turn %d = %q, want %q", i+1, history[i+1].Content, content)
		}
	}
}
