package paymentsetu

import (
	"fmt"
	"strings"

	"github.com/cartsetu/CartSetu/app/models"
)

// BuildCreateOrderRequest assembles the provider-facing payment session
// request for an order. The amount conversion goes through
// Order.TotalMinorUnits, the same rounding the webhook amount check uses.
func BuildCreateOrderRequest(cfg Config, order *models.Order, redirectURL string) *CreateOrderRequest {
	return &CreateOrderRequest{
		OrderID:        cfg.OrderPrefix + order.OrderNumber,
		Amount:         order.TotalMinorUnits(),
		RedirectURL:    redirectURL,
		CustomerName:   strings.TrimSpace(order.CustomerName),
		CustomerEmail:  strings.TrimSpace(order.CustomerEmail),
		CustomerMobile: strings.TrimSpace(order.CustomerPhone),
		Remarks:        fmt.Sprintf("CartSetu order #%s", order.OrderNumber),
	}
}
