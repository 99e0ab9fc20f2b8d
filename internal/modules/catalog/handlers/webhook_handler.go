package handlers

import (
	"encoding/xml"
	"log"
	"strings"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/services"
	"github.com/gofiber/fiber/v2"
)

const processingError = "Ocurrió un error al procesar tu mensaje. Intenta nuevamente."

// twimlResponse is the TwiML envelope Twilio expects back from the
// WhatsApp webhook.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

type WebhookHandler struct {
	messageService *services.MessageService
}

func NewWebhookHandler(messageService *services.MessageService) *WebhookHandler {
	return &WebhookHandler{messageService: messageService}
}

// HandleWhatsApp receives a Twilio WhatsApp form post (From, Body) and
// replies with TwiML. Any pipeline failure degrades to a fixed apology;
// the customer never sees an error page.
func (h *WebhookHandler) HandleWhatsApp(c *fiber.Ctx) error {
	from := c.FormValue("From")           // e.g. whatsapp:+59171234567
	body := strings.TrimSpace(c.FormValue("Body"))
	phone := strings.TrimPrefix(from, "whatsapp:")

	reply, err := h.messageService.HandleIncoming(c.Context(), phone, body)
	if err != nil {
		log.Printf("❌ Error handling message from %s: %v", phone, err)
		reply = processingError
	}

	return respondTwiML(c, reply)
}

func respondTwiML(c *fiber.Ctx, message string) error {
	payload, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("")
	}
	c.Set("Content-Type", "application/xml")
	return c.SendString(xml.Header + string(payload))
}
