package controllers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/cartsetu/CartSetu/app/repository"
	"github.com/cartsetu/CartSetu/internal/pkg/cache"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
	"github.com/gofiber/fiber/v2"
)

const creditsCacheKey = "paymentsetu:credits"
const creditsCacheTTL = 30 * time.Second

// gatewayStatus is what operators see on the gateway status endpoint.
type gatewayStatus struct {
	Enabled            bool   `json:"enabled"`
	RemainingCredits   int    `json:"remaining_credits"`
	SubscriptionStatus string `json:"subscription_status"`
}

// AdminController exposes the operator-facing gateway status, mirroring the
// credit balance PaymentSetu shows in its own dashboard.
type AdminController struct {
	repos     *repository.Repositories
	newClient func(apiKey string) *paymentsetu.Client
	cacheGet  func(key string) (string, error)
	cacheSet  func(key string, value string, ttl time.Duration) error
}

func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos:     repos,
		newClient: paymentsetu.NewClient,
		cacheGet:  cache.Get,
		cacheSet: func(key string, value string, ttl time.Duration) error {
			return cache.Set(key, value, ttl)
		},
	}
}

var adminController *AdminController

// InitializeAdminController wires the controller to the global repositories.
func InitializeAdminController() {
	adminController = NewAdminController(repository.GetGlobalRepositories())
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// HandleGatewayStatus - Adapter for GET /admin/paymentsetu/status
func HandleGatewayStatus(c *fiber.Ctx) error {
	return GetAdminController().HandleStatus(c)
}

func (ac *AdminController) HandleStatus(c *fiber.Ctx) error {
	cfg, err := paymentsetu.LoadConfig(ac.repos.Setting)
	if err != nil {
		log.Printf("[paymentsetu] status: loading gateway settings failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gateway_settings_unavailable"})
	}
	if cfg.APIKey == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gateway_not_configured"})
	}

	// Credits move slowly; a short cache keeps the admin page from burning
	// provider API calls. The webhook path never reads this cache.
	if raw, err := ac.cacheGet(creditsCacheKey); err == nil {
		var status gatewayStatus
		if json.Unmarshal([]byte(raw), &status) == nil {
			return c.Status(fiber.StatusOK).JSON(status)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout)
	defer cancel()

	resp, err := ac.newClient(cfg.APIKey).CheckCredits(ctx)
	if err != nil || !resp.Status || resp.Credits == nil {
		log.Printf("[paymentsetu] check_credits failed: err=%v resp=%+v", err, resp)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "credits_check_failed"})
	}

	status := gatewayStatus{
		Enabled:            cfg.Enabled,
		RemainingCredits:   resp.Credits.RemainingCredits,
		SubscriptionStatus: resp.Credits.SubscriptionStatus,
	}
	if raw, err := json.Marshal(status); err == nil {
		if err := ac.cacheSet(creditsCacheKey, string(raw), creditsCacheTTL); err != nil {
			log.Printf("[paymentsetu] status: caching credits failed: %v", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(status)
}
