package router

import (
	"github.com/cartsetu/CartSetu/app/controllers"
	"github.com/cartsetu/CartSetu/internal/pkg/constants"
	"github.com/cartsetu/CartSetu/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Initialize controllers with repositories
	controllers.InitializeWebhookController()
	controllers.InitializeCheckoutController()
	controllers.InitializeAdminController()

	// Provider-initiated callbacks. Authenticated by HMAC, never rate
	// limited: dropping a legitimate delivery delays reconciliation.
	app.Post(constants.WebhookRoute, controllers.HandlePaymentSetuWebhook)

	checkout := app.Group("/checkout", limiter.New())
	checkout.Post(constants.CheckoutPayRoute, controllers.HandleCheckoutPay)

	admin := app.Group("/admin", middleware.AdminAuthMiddleware())
	admin.Get(constants.AdminStatusRoute, controllers.HandleGatewayStatus)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
