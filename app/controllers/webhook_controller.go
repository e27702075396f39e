package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/cartsetu/CartSetu/app/repository"
	"github.com/cartsetu/CartSetu/internal/pkg/metrics/counter"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WebhookController processes inbound PaymentSetu payment notifications:
// authenticate, validate, guard, reconcile, persist once.
type WebhookController struct {
	repos         *repository.Repositories
	recordOutcome func(outcome paymentsetu.Outcome)
}

func NewWebhookController(repos *repository.Repositories) *WebhookController {
	return &WebhookController{
		repos: repos,
		recordOutcome: func(outcome paymentsetu.Outcome) {
			if err := counter.AddWebhookOutcome(string(outcome)); err != nil {
				log.Printf("[paymentsetu] webhook: counting outcome %s failed: %v", outcome, err)
			}
		},
	}
}

var webhookController *WebhookController

// InitializeWebhookController wires the controller to the global repositories.
func InitializeWebhookController() {
	webhookController = NewWebhookController(repository.GetGlobalRepositories())
}

// GetWebhookController returns the global webhook controller instance
func GetWebhookController() *WebhookController {
	if webhookController == nil {
		InitializeWebhookController()
	}
	return webhookController
}

// HandlePaymentSetuWebhook - Adapter for POST /paymentsetu/v1/webhook
func HandlePaymentSetuWebhook(c *fiber.Ctx) error {
	return GetWebhookController().Handle(c)
}

func (wc *WebhookController) Handle(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	cfg, err := paymentsetu.LoadConfig(wc.repos.Setting)
	if err != nil {
		log.Printf("[paymentsetu] webhook: loading gateway settings failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gateway configuration unavailable."})
	}
	if cfg.APIKey == "" {
		log.Printf("[paymentsetu] webhook rejected: gateway not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gateway not configured."})
	}

	// Authentication runs before any parsing; untrusted bytes must not
	// influence anything until the HMAC checks out.
	signature := strings.TrimSpace(c.Get("X-PaymentSetu-Signature"))
	timestamp := strings.TrimSpace(c.Get("X-PaymentSetu-Timestamp"))
	if signature == "" || timestamp == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing security headers."})
	}
	if !paymentsetu.VerifySignature(rawBody, timestamp, signature, cfg.APIKey) {
		log.Printf("[paymentsetu] webhook rejected: invalid signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature."})
	}

	event := wc.recordEvent(rawBody)

	payload, err := paymentsetu.ParsePayload(rawBody)
	if err != nil {
		wc.markProcessed(event, err)
		if errors.Is(err, paymentsetu.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields."})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON payload."})
	}

	order, err := wc.repos.Order.GetByOrderNumber(localOrderNumber(cfg, payload.OrderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[paymentsetu] webhook: order %q not found", paymentsetu.SanitizeText(payload.OrderID))
			wc.markProcessed(event, errors.New("order not found"))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found."})
		}
		wc.markProcessed(event, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Order lookup failed."})
	}

	// Guard: cross-gateway webhooks must never mutate foreign orders.
	if order.PaymentMethod != models.PaymentMethodPaymentSetu {
		wc.markProcessed(event, errors.New("order not associated with paymentsetu"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order not associated with PaymentSetu."})
	}

	// Guard: settled orders are never touched again. Re-delivered webhooks
	// become successful no-ops here instead of double-crediting.
	if order.IsPaid() {
		log.Printf("[paymentsetu] webhook: order %s outcome=%s", order.OrderNumber, paymentsetu.OutcomeAlreadyProcessed)
		wc.recordOutcome(paymentsetu.OutcomeAlreadyProcessed)
		wc.markProcessed(event, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Order already processed."})
	}

	res := paymentsetu.Reconcile(order, payload)
	if err := wc.repos.Order.ApplyReconciliation(order, res); err != nil {
		log.Printf("[paymentsetu] webhook: persisting order %s failed: %v", order.OrderNumber, err)
		wc.markProcessed(event, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to persist order update."})
	}

	log.Printf("[paymentsetu] webhook: order %s outcome=%s", order.OrderNumber, res.Outcome)
	wc.recordOutcome(res.Outcome)
	wc.markProcessed(event, nil)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": res.Message})
}

// recordEvent appends the delivery to the webhook audit log. The audit trail
// is advisory: a storage failure here is logged but never blocks
// reconciliation, and duplicates are detected by payload hash.
func (wc *WebhookController) recordEvent(rawBody []byte) *models.WebhookEvent {
	sum := sha256.Sum256(rawBody)
	event := &models.WebhookEvent{
		EventID:        "hash:" + hex.EncodeToString(sum[:]),
		PayloadJSON:    string(rawBody),
		SignatureValid: true,
	}

	created, stored, err := wc.repos.WebhookEvent.CreateIfNotExists(event)
	if err != nil {
		log.Printf("[paymentsetu] webhook: recording event failed: %v", err)
		return nil
	}
	if !created {
		log.Printf("[paymentsetu] webhook: duplicate delivery %s", stored.EventID)
	}
	return stored
}

func (wc *WebhookController) markProcessed(event *models.WebhookEvent, processingErr error) {
	if event == nil {
		return
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	if err := wc.repos.WebhookEvent.MarkProcessed(event.ID, errMsg); err != nil {
		log.Printf("[paymentsetu] webhook: marking event %d processed failed: %v", event.ID, err)
	}
}

// localOrderNumber strips the configured order prefix from the provider's
// order reference. Outbound orders are created as prefix+number, and the
// provider echoes that identifier back in webhooks.
func localOrderNumber(cfg paymentsetu.Config, providerOrderID string) string {
	if cfg.OrderPrefix != "" && strings.HasPrefix(providerOrderID, cfg.OrderPrefix) {
		return strings.TrimPrefix(providerOrderID, cfg.OrderPrefix)
	}
	return providerOrderID
}
