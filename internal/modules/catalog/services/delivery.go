package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/email"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/export"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
)

// DeliveryService turns pending interest records into per-customer
// PDF catalogs and emails them. Interests are marked sent only after
// the email provider accepts the message.
type DeliveryService struct {
	interestRepo repositories.InterestRepo
	exporter     *export.PDFExporter
	emailService *email.Service
}

func NewDeliveryService(interestRepo repositories.InterestRepo, exporter *export.PDFExporter, emailService *email.Service) *DeliveryService {
	return &DeliveryService{
		interestRepo: interestRepo,
		exporter:     exporter,
		emailService: emailService,
	}
}

// customerBatch collects one customer's pending interests across kinds.
type customerBatch struct {
	customer   models.Customer
	products   []models.ProductInterest
	categories []models.CategoryInterest
	promotions []models.PromotionInterest
}

// DeliverPending sends every customer with pending interests one email
// per interest kind. Customers without an email address are skipped
// and their interests stay pending.
func (s *DeliveryService) DeliverPending() error {
	batches, err := s.collectBatches()
	if err != nil {
		return err
	}
	log.Printf("📬 Delivering pending interests for %d customers...", len(batches))

	for _, batch := range batches {
		if batch.customer.Email == "" {
			log.Printf("⚠️ Customer %s (%s) has no email, skipping delivery", batch.customer.Name, batch.customer.Phone)
			continue
		}
		if err := s.deliverBatch(batch); err != nil {
			log.Printf("❌ Delivery failed for %s: %v", batch.customer.Email, err)
		}
	}
	return nil
}

func (s *DeliveryService) collectBatches() (map[uuid.UUID]*customerBatch, error) {
	batches := make(map[uuid.UUID]*customerBatch)

	ensure := func(customer models.Customer) *customerBatch {
		batch, ok := batches[customer.ID]
		if !ok {
			batch = &customerBatch{customer: customer}
			batches[customer.ID] = batch
		}
		return batch
	}

	products, err := s.interestRepo.ListPendingProductInterests()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending product interests: %w", err)
	}
	for _, interest := range products {
		batch := ensure(interest.Chat.Customer)
		batch.products = append(batch.products, interest)
	}

	categories, err := s.interestRepo.ListPendingCategoryInterests()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending category interests: %w", err)
	}
	for _, interest := range categories {
		batch := ensure(interest.Chat.Customer)
		batch.categories = append(batch.categories, interest)
	}

	promotions, err := s.interestRepo.ListPendingPromotionInterests()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending promotion interests: %w", err)
	}
	for _, interest := range promotions {
		batch := ensure(interest.Chat.Customer)
		batch.promotions = append(batch.promotions, interest)
	}

	return batches, nil
}

func (s *DeliveryService) deliverBatch(batch *customerBatch) error {
	if len(batch.products) > 0 {
		section := export.Section{
			Heading: "Productos de Interés",
			Headers: []string{"Producto", "Categoría", "Stock", "Fecha", "Observación"},
		}
		names := make([]string, 0, len(batch.products))
		ids := make([]uint, 0, len(batch.products))
		for _, interest := range batch.products {
			section.Rows = append(section.Rows, []string{
				interest.Product.Name,
				interest.Product.Category.Name,
				fmt.Sprintf("%d", interest.Product.Stock),
				interest.RecordedOn.Format("2006-01-02"),
				interest.Observation,
			})
			names = append(names, interest.Product.Name)
			ids = append(ids, interest.ID)
		}
		body := fmt.Sprintf("Hola %s,\n\nTe enviamos los productos que despertaron tu interés hoy.\n¡Gracias por tu preferencia!", batch.customer.Name)
		if err := s.sendKind(batch.customer, models.InterestKindProduct, "Productos de tu interés - PDF adjunto", body, section, names); err != nil {
			return err
		}
		if err := s.interestRepo.MarkProductInterestsSent(ids); err != nil {
			return err
		}
	}

	if len(batch.categories) > 0 {
		section := export.Section{
			Heading: "Categorías de Interés",
			Headers: []string{"Categoría", "Fecha", "Observación"},
		}
		names := make([]string, 0, len(batch.categories))
		ids := make([]uint, 0, len(batch.categories))
		for _, interest := range batch.categories {
			section.Rows = append(section.Rows, []string{
				interest.Category.Name,
				interest.RecordedOn.Format("2006-01-02"),
				interest.Observation,
			})
			names = append(names, interest.Category.Name)
			ids = append(ids, interest.ID)
		}
		body := fmt.Sprintf("Hola %s,\n\nAquí tienes productos de las categorías que estuviste revisando.\n¡Esperamos que alguno sea de tu agrado!", batch.customer.Name)
		if err := s.sendKind(batch.customer, models.InterestKindCategory, "Categorias de tu interés - PDF adjunto", body, section, names); err != nil {
			return err
		}
		if err := s.interestRepo.MarkCategoryInterestsSent(ids); err != nil {
			return err
		}
	}

	if len(batch.promotions) > 0 {
		section := export.Section{
			Heading: "Promociones de Interés",
			Headers: []string{"Promoción", "Descuento", "Vigente hasta", "Fecha"},
		}
		names := make([]string, 0, len(batch.promotions))
		ids := make([]uint, 0, len(batch.promotions))
		for _, interest := range batch.promotions {
			until := ""
			if interest.Promotion.EndsAt != nil {
				until = interest.Promotion.EndsAt.Format("2006-01-02")
			}
			section.Rows = append(section.Rows, []string{
				interest.Promotion.Name,
				fmt.Sprintf("%.0f%% / Bs. %.2f", interest.Promotion.DiscountPercent, interest.Promotion.DiscountAmount),
				until,
				interest.RecordedOn.Format("2006-01-02"),
			})
			names = append(names, interest.Promotion.Name)
			ids = append(ids, interest.ID)
		}
		body := fmt.Sprintf("Hola %s,\n\nTe compartimos promociones relacionadas a tus intereses recientes.\n¡Aprovecha antes que finalicen!", batch.customer.Name)
		if err := s.sendKind(batch.customer, models.InterestKindPromotion, "Promociones de tu interés - PDF adjunto", body, section, names); err != nil {
			return err
		}
		if err := s.interestRepo.MarkPromotionInterestsSent(ids); err != nil {
			return err
		}
	}

	return nil
}

func (s *DeliveryService) sendKind(customer models.Customer, kind, subject, body string, section export.Section, names []string) error {
	report := &export.Report{
		Title:       fmt.Sprintf("Resumen de Intereses - %s", customer.Name),
		GeneratedAt: time.Now(),
		Sections:    []export.Section{section},
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(report, &buf); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	attachment := email.Attachment{
		Name:    fmt.Sprintf("intereses_%s.pdf", kind),
		Content: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	htmlBody := "<p>" + strings.ReplaceAll(body, "\n", "<br>") + "</p>"
	if err := s.emailService.SendEmailWithAttachment(customer.Email, subject, htmlBody, attachment); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	items, err := json.Marshal(map[string]interface{}{"kind": kind, "names": names})
	if err != nil {
		return err
	}
	if err := s.interestRepo.CreateDeliveryRecord(&models.DeliveryRecord{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Items:      items,
	}); err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	log.Printf("✅ Sent %s catalog to %s", kind, customer.Email)
	return nil
}
