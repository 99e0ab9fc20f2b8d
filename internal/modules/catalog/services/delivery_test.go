package services

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/email"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/export"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
)

type sentEmail struct {
	to         string
	subject    string
	body       string
	attachment email.Attachment
}

type fakeEmailProvider struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailProvider) SendEmail(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeEmailProvider) SendEmailWithAttachment(to, subject, body string, attachment email.Attachment) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body, attachment: attachment})
	return nil
}

func (f *fakeEmailProvider) GetProviderName() string { return "fake" }

func TestDeliveryService_DeliverPending(t *testing.T) {
	db := newTestDB(t)
	catalog := seedCatalog(t, db)

	customer := models.Customer{Name: "Carla", Phone: "+59174000001", Email: "carla@example.com"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	chat := models.Chat{CustomerID: customer.ID, State: models.ChatStateOpen}
	if err := db.Create(&chat).Error; err != nil {
		t.Fatalf("seed chat: %v", err)
	}

	interestRepo := repositories.NewInterestRepo(db)
	now := time.Now()
	if _, err := interestRepo.RegisterProductInterest(chat.ID, catalog.cuadernoA4.ID, now, ""); err != nil {
		t.Fatalf("register product interest: %v", err)
	}
	if _, err := interestRepo.RegisterCategoryInterest(chat.ID, catalog.stickers.ID, now, ""); err != nil {
		t.Fatalf("register category interest: %v", err)
	}

	provider := &fakeEmailProvider{}
	svc := NewDeliveryService(interestRepo, export.NewPDFExporter(), email.NewService(provider))

	if err := svc.DeliverPending(); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	// One email per interest kind
	if len(provider.sent) != 2 {
		t.Fatalf("emails sent = %d, want 2", len(provider.sent))
	}
	first := provider.sent[0]
	if first.to != "carla@example.com" {
		t.Fatalf("to = %q", first.to)
	}
	if first.subject != "Productos de tu interés - PDF adjunto" {
		t.Fatalf("subject = %q", first.subject)
	}
	if !strings.Contains(first.body, "Hola Carla,") {
		t.Fatalf("body missing salutation: %q", first.body)
	}
	if first.attachment.Name != "intereses_producto.pdf" {
		t.Fatalf("attachment name = %q", first.attachment.Name)
	}
	pdf, err := base64.StdEncoding.DecodeString(first.attachment.Content)
	if err != nil {
		t.Fatalf("attachment is not base64: %v", err)
	}
	if len(pdf) == 0 || string(pdf[:4]) != "%PDF" {
		t.Fatal("attachment is not a PDF")
	}

	// Delivered interests are marked sent
	var pending int64
	db.Model(&models.ProductInterest{}).Where("status = ?", models.InterestPending).Count(&pending)
	if pending != 0 {
		t.Fatalf("pending product interests = %d, want 0", pending)
	}
	db.Model(&models.CategoryInterest{}).Where("status = ?", models.InterestPending).Count(&pending)
	if pending != 0 {
		t.Fatalf("pending category interests = %d, want 0", pending)
	}

	var records int64
	db.Model(&models.DeliveryRecord{}).Where("customer_id = ?", customer.ID).Count(&records)
	if records != 2 {
		t.Fatalf("delivery records = %d, want one per kind", records)
	}
}

func TestDeliveryService_NoEmailStaysPending(t *testing.T) {
	db := newTestDB(t)
	catalog := seedCatalog(t, db)
	_, chat := seedChat(t, db, "+59174000002") // no email

	interestRepo := repositories.NewInterestRepo(db)
	if _, err := interestRepo.RegisterProductInterest(chat.ID, catalog.cuadernoA4.ID, time.Now(), ""); err != nil {
		t.Fatalf("register product interest: %v", err)
	}

	provider := &fakeEmailProvider{}
	svc := NewDeliveryService(interestRepo, export.NewPDFExporter(), email.NewService(provider))

	if err := svc.DeliverPending(); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(provider.sent) != 0 {
		t.Fatalf("emails sent = %d, want 0 without an address", len(provider.sent))
	}

	var pending int64
	db.Model(&models.ProductInterest{}).Where("status = ?", models.InterestPending).Count(&pending)
	if pending != 1 {
		t.Fatalf("pending product interests = %d, want 1", pending)
	}
}
