package paymentsetu

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/shopspring/decimal"
)

// Outcome classifies what a reconciliation decided. It is derived per
// request and never persisted.
type Outcome string

const (
	OutcomePaymentConfirmed   Outcome = "payment_confirmed"
	OutcomeAmountMismatchHeld Outcome = "amount_mismatch_held"
	OutcomePaymentFailed      Outcome = "payment_failed"
	OutcomeAlreadyProcessed   Outcome = "already_processed"
	OutcomeUnhandledStatus    Outcome = "unhandled_status"
)

// Result is the full effect of one reconciliation decision: the order state
// transition, audit notes and metadata to write, and the message returned to
// the provider. The caller applies it in a single persistence step.
type Result struct {
	Outcome        Outcome
	NewStatus      string // empty means the order status is unchanged
	TransactionRef string
	Notes          []string
	Meta           map[string]string
	Message        string
}

// Reconcile maps (payload status, amount match, current order snapshot) to
// an order state transition. It is pure: the order is only read, and all
// writes are described by the returned Result.
//
// The caller has already authenticated the request, resolved the order and
// enforced the gateway/paid guards.
func Reconcile(order *models.Order, p *Payload) *Result {
	res := &Result{
		Meta: map[string]string{
			models.MetaKeyWebhookPayload: string(p.Raw()),
		},
	}

	switch p.Status {
	case StatusSuccess:
		expected := order.TotalMinorUnits()
		if p.Amount != expected {
			res.Outcome = OutcomeAmountMismatchHeld
			res.NewStatus = models.OrderStatusOnHold
			res.Notes = append(res.Notes, fmt.Sprintf(
				"PaymentSetu: amount mismatch. Expected ₹%s, received ₹%s. Order put on-hold for manual review.",
				order.Total.StringFixed(2),
				decimal.NewFromInt(p.Amount).Div(decimal.NewFromInt(100)).StringFixed(2),
			))
			res.Message = "Amount mismatch; order held."
			return res
		}

		res.Outcome = OutcomePaymentConfirmed
		res.NewStatus = models.OrderStatusProcessing
		res.TransactionRef = SanitizeText(p.TxnUTR)
		if res.TransactionRef != "" {
			res.Meta[models.MetaKeyTxnUTR] = res.TransactionRef
		}
		res.Notes = append(res.Notes, fmt.Sprintf(
			"PaymentSetu: payment confirmed. UTR: %s | UPI ID: %s | Time: %s",
			orPlaceholder(res.TransactionRef),
			orPlaceholder(SanitizeText(p.CustomerUPIID)),
			orPlaceholder(SanitizeText(p.TxnTime)),
		))
		res.Message = "Webhook processed."

	case StatusFailed, StatusExpired:
		res.Outcome = OutcomePaymentFailed
		res.NewStatus = models.OrderStatusFailed
		res.Notes = append(res.Notes, fmt.Sprintf("PaymentSetu: payment %s.", p.RawStatus))
		res.Message = "Webhook processed."

	default:
		res.Outcome = OutcomeUnhandledStatus
		res.Notes = append(res.Notes, fmt.Sprintf(
			"PaymentSetu: unhandled webhook status %q.", SanitizeText(p.RawStatus)))
		res.Message = "Webhook processed."
	}

	return res
}

// AlreadyPaidResult describes the synchronous reconciliation performed at
// checkout when create_order reports the order was already paid.
func AlreadyPaidResult() *Result {
	return &Result{
		Outcome:   OutcomePaymentConfirmed,
		NewStatus: models.OrderStatusProcessing,
		Notes:     []string{"PaymentSetu: order marked complete (already paid via gateway)."},
		Message:   "Order already paid.",
	}
}

// PendingPaymentResult describes the transition applied after a payment
// session was created and the customer is being redirected to the provider.
func PendingPaymentResult(paymentURL string) *Result {
	return &Result{
		NewStatus: models.OrderStatusPending,
		Notes:     []string{"Awaiting PaymentSetu UPI payment."},
		Meta:      map[string]string{models.MetaKeyPaymentURL: paymentURL},
	}
}

// SanitizeText strips control characters and collapses surrounding
// whitespace from provider-supplied strings before they reach notes,
// metadata or logs.
func SanitizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
