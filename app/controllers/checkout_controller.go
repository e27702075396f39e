package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/cartsetu/CartSetu/app/repository"
	"github.com/cartsetu/CartSetu/internal/pkg/cache"
	"github.com/cartsetu/CartSetu/internal/pkg/env"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const outboundTimeout = 30 * time.Second

// CheckoutController runs the outbound order-create flow: it asks
// PaymentSetu for a hosted payment session and tells the storefront where to
// send the customer.
type CheckoutController struct {
	repos     *repository.Repositories
	newClient func(apiKey string) *paymentsetu.Client
	clearCart func(orderNumber string)
}

func NewCheckoutController(repos *repository.Repositories) *CheckoutController {
	return &CheckoutController{
		repos:     repos,
		newClient: paymentsetu.NewClient,
		clearCart: func(orderNumber string) {
			if err := cache.Delete("cart:" + orderNumber); err != nil {
				log.Printf("[paymentsetu] checkout: clearing cart for order %s failed: %v", orderNumber, err)
			}
		},
	}
}

var checkoutController *CheckoutController

// InitializeCheckoutController wires the controller to the global repositories.
func InitializeCheckoutController() {
	checkoutController = NewCheckoutController(repository.GetGlobalRepositories())
}

// GetCheckoutController returns the global checkout controller instance
func GetCheckoutController() *CheckoutController {
	if checkoutController == nil {
		InitializeCheckoutController()
	}
	return checkoutController
}

// HandleCheckoutPay - Adapter for POST /checkout/order/:number/pay
func HandleCheckoutPay(c *fiber.Ctx) error {
	return GetCheckoutController().Handle(c)
}

func (cc *CheckoutController) Handle(c *fiber.Ctx) error {
	order, err := cc.repos.Order.GetByOrderNumber(c.Params("number"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"result":  "failure",
				"message": "Order not found. Please try again.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"result":  "failure",
			"message": "Order lookup failed. Please try again.",
		})
	}

	cfg, err := paymentsetu.LoadConfig(cc.repos.Setting)
	if err != nil {
		log.Printf("[paymentsetu] checkout: loading gateway settings failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"result":  "failure",
			"message": "Payment could not be started. Please try again.",
		})
	}
	if !cfg.Enabled || cfg.APIKey == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":  "failure",
			"message": "PaymentSetu is not configured. Please contact the store owner.",
		})
	}

	returnURL := checkoutReturnURL(order)
	req := paymentsetu.BuildCreateOrderRequest(cfg, order, returnURL)

	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout)
	defer cancel()

	resp, err := cc.newClient(cfg.APIKey).CreateOrder(ctx, req)
	if err != nil {
		log.Printf("[paymentsetu] create_order failed for order %s: %v", order.OrderNumber, err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":  "failure",
			"message": "Could not create payment link. Please try again.",
		})
	}

	if !resp.Status {
		return cc.handleCreateFailure(c, order, returnURL, resp)
	}

	if strings.TrimSpace(resp.PaymentURL) == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":  "failure",
			"message": "PaymentSetu did not return a payment URL. Please try again.",
		})
	}

	order.PaymentMethod = models.PaymentMethodPaymentSetu
	if err := cc.repos.Order.ApplyReconciliation(order, paymentsetu.PendingPaymentResult(resp.PaymentURL)); err != nil {
		log.Printf("[paymentsetu] checkout: persisting pending order %s failed: %v", order.OrderNumber, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"result":  "failure",
			"message": "Payment could not be started. Please try again.",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":   "success",
		"redirect": resp.PaymentURL,
	})
}

// handleCreateFailure interprets a status=false create_order response. The
// ALREADY_PAID code is a synchronous reconciliation path: the provider
// settled the payment before checkout polled back.
func (cc *CheckoutController) handleCreateFailure(c *fiber.Ctx, order *models.Order, returnURL string, resp *paymentsetu.APIResponse) error {
	switch resp.ErrorCode {
	case paymentsetu.ErrorCodeAlreadyPaid:
		order.PaymentMethod = models.PaymentMethodPaymentSetu
		if err := cc.repos.Order.ApplyReconciliation(order, paymentsetu.AlreadyPaidResult()); err != nil {
			log.Printf("[paymentsetu] checkout: completing already-paid order %s failed: %v", order.OrderNumber, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"result":  "failure",
				"message": "Payment could not be confirmed. Please contact support.",
			})
		}
		cc.clearCart(order.OrderNumber)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":   "success",
			"redirect": returnURL,
		})

	case paymentsetu.ErrorCodeCreditExhausted:
		// Provider account problem; never leak billing details to the shopper.
		log.Printf("[paymentsetu] create_order failed for order %s: error_code=%s msg=%q", order.OrderNumber, resp.ErrorCode, resp.Msg)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":  "failure",
			"message": "This payment method is temporarily unavailable. Please choose a different payment method or contact support.",
		})

	default:
		log.Printf("[paymentsetu] create_order failed for order %s: error_code=%q msg=%q", order.OrderNumber, resp.ErrorCode, resp.Msg)
		msg := strings.TrimSpace(resp.Msg)
		if msg == "" {
			msg = "Could not create payment link. Please try again."
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result":  "failure",
			"message": msg,
		})
	}
}

func checkoutReturnURL(order *models.Order) string {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	return base + "/checkout/order/" + order.OrderNumber + "/complete"
}
