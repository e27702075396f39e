package constants

// Static route constants
const (
	WebhookRoute     = "/paymentsetu/v1/webhook"
	CheckoutPayRoute = "/order/:number/pay"
	AdminStatusRoute = "/paymentsetu/status"
)
