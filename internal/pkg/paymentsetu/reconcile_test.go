package paymentsetu

import (
	"strings"
	"testing"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/shopspring/decimal"
)

func testOrder(total string) *models.Order {
	return &models.Order{
		ID:            7,
		OrderNumber:   "1001",
		Total:         decimal.RequireFromString(total),
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodPaymentSetu,
	}
}

func mustParse(t *testing.T, raw string) *Payload {
	t.Helper()
	p, err := ParsePayload([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return p
}

func TestReconcile_SuccessMatch(t *testing.T) {
	order := testOrder("499.00")
	p := mustParse(t, `{"order_id":"1001","status":"success","amount":49900,"txn_utr":"UTR42","customer_upi_id":"shopper@upi","txn_time":"2026-08-30 17:05:01"}`)

	res := Reconcile(order, p)

	if res.Outcome != OutcomePaymentConfirmed {
		t.Fatalf("outcome = %q, want payment_confirmed", res.Outcome)
	}
	if res.NewStatus != models.OrderStatusProcessing {
		t.Fatalf("new status = %q, want processing", res.NewStatus)
	}
	if res.TransactionRef != "UTR42" {
		t.Fatalf("transaction ref = %q, want UTR42", res.TransactionRef)
	}
	if res.Meta[models.MetaKeyTxnUTR] != "UTR42" {
		t.Fatalf("expected UTR metadata, got %q", res.Meta[models.MetaKeyTxnUTR])
	}
	if res.Meta[models.MetaKeyWebhookPayload] == "" {
		t.Fatalf("expected raw payload metadata for audit")
	}
	if len(res.Notes) != 1 {
		t.Fatalf("expected exactly one note, got %d", len(res.Notes))
	}
	note := res.Notes[0]
	for _, part := range []string{"UTR42", "shopper@upi", "2026-08-30 17:05:01"} {
		if !strings.Contains(note, part) {
			t.Fatalf("note %q missing %q", note, part)
		}
	}
	if res.Message != "Webhook processed." {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestReconcile_SuccessWithoutOptionalFields(t *testing.T) {
	order := testOrder("10.00")
	p := mustParse(t, `{"order_id":"1001","status":"success","amount":1000}`)

	res := Reconcile(order, p)

	if res.Outcome != OutcomePaymentConfirmed {
		t.Fatalf("outcome = %q, want payment_confirmed", res.Outcome)
	}
	if res.TransactionRef != "" {
		t.Fatalf("expected empty transaction ref, got %q", res.TransactionRef)
	}
	if _, ok := res.Meta[models.MetaKeyTxnUTR]; ok {
		t.Fatalf("expected no UTR metadata when txn_utr is absent")
	}
	if !strings.Contains(res.Notes[0], "UTR: N/A") || !strings.Contains(res.Notes[0], "UPI ID: N/A") {
		t.Fatalf("expected N/A placeholders in note %q", res.Notes[0])
	}
}

func TestReconcile_AmountMismatchHolds(t *testing.T) {
	order := testOrder("499.00")
	p := mustParse(t, `{"order_id":"1001","status":"success","amount":49000}`)

	res := Reconcile(order, p)

	if res.Outcome != OutcomeAmountMismatchHeld {
		t.Fatalf("outcome = %q, want amount_mismatch_held", res.Outcome)
	}
	if res.NewStatus != models.OrderStatusOnHold {
		t.Fatalf("new status = %q, want on-hold", res.NewStatus)
	}
	if res.TransactionRef != "" {
		t.Fatalf("mismatch must not record a transaction ref")
	}
	// The note records both amounts in major units.
	if !strings.Contains(res.Notes[0], "499.00") || !strings.Contains(res.Notes[0], "490.00") {
		t.Fatalf("note %q should contain expected and received amounts", res.Notes[0])
	}
	if res.Message != "Amount mismatch; order held." {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestReconcile_MissingAmountIsMismatch(t *testing.T) {
	// An omitted amount coerces to zero and must never auto-complete.
	order := testOrder("499.00")
	p := mustParse(t, `{"order_id":"1001","status":"success"}`)

	res := Reconcile(order, p)
	if res.Outcome != OutcomeAmountMismatchHeld {
		t.Fatalf("outcome = %q, want amount_mismatch_held", res.Outcome)
	}
	if !strings.Contains(res.Notes[0], "0.00") {
		t.Fatalf("note %q should record the received zero amount", res.Notes[0])
	}
}

func TestReconcile_TerminalFailures(t *testing.T) {
	for _, status := range []string{"failed", "expired"} {
		order := testOrder("100.00")
		p := mustParse(t, `{"order_id":"1001","status":"`+status+`"}`)

		res := Reconcile(order, p)
		if res.Outcome != OutcomePaymentFailed {
			t.Fatalf("status %q: outcome = %q, want payment_failed", status, res.Outcome)
		}
		if res.NewStatus != models.OrderStatusFailed {
			t.Fatalf("status %q: new status = %q, want failed", status, res.NewStatus)
		}
		if !strings.Contains(res.Notes[0], status) {
			t.Fatalf("status %q: note %q should cite the terminal status", status, res.Notes[0])
		}
	}
}

func TestReconcile_UnknownStatusLeavesOrderAlone(t *testing.T) {
	order := testOrder("100.00")
	p := mustParse(t, `{"order_id":"1001","status":"pending_review","amount":10000}`)

	res := Reconcile(order, p)

	if res.Outcome != OutcomeUnhandledStatus {
		t.Fatalf("outcome = %q, want unhandled_status", res.Outcome)
	}
	if res.NewStatus != "" {
		t.Fatalf("unknown status must not change the order status, got %q", res.NewStatus)
	}
	if !strings.Contains(res.Notes[0], "pending_review") {
		t.Fatalf("note %q should flag the unknown status", res.Notes[0])
	}
	if res.Message != "Webhook processed." {
		t.Fatalf("unknown statuses still succeed, got message %q", res.Message)
	}
}

func TestReconcile_RoundingMirrorsCheckout(t *testing.T) {
	// 18% GST style totals must round the same way the create_order amount
	// did, or every such payment would be held.
	order := testOrder("117.99")
	p := mustParse(t, `{"order_id":"1001","status":"success","amount":11799}`)

	if got := order.TotalMinorUnits(); got != 11799 {
		t.Fatalf("TotalMinorUnits = %d, want 11799", got)
	}
	res := Reconcile(order, p)
	if res.Outcome != OutcomePaymentConfirmed {
		t.Fatalf("outcome = %q, want payment_confirmed", res.Outcome)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "UTR123", want: "UTR123"},
		{in: "  padded  ", want: "padded"},
		{in: "line\nbreak\ttab", want: "linebreaktab"},
		{in: "nul\x00byte", want: "nulbyte"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlreadyPaidResult(t *testing.T) {
	res := AlreadyPaidResult()
	if res.Outcome != OutcomePaymentConfirmed {
		t.Fatalf("outcome = %q, want payment_confirmed", res.Outcome)
	}
	if res.NewStatus != models.OrderStatusProcessing {
		t.Fatalf("new status = %q, want processing", res.NewStatus)
	}
	if len(res.Notes) != 1 || !strings.Contains(res.Notes[0], "already paid") {
		t.Fatalf("expected an already-paid note, got %v", res.Notes)
	}
}

func TestPendingPaymentResult(t *testing.T) {
	res := PendingPaymentResult("https://paymentsetu.com/pay/abc")
	if res.NewStatus != models.OrderStatusPending {
		t.Fatalf("new status = %q, want pending", res.NewStatus)
	}
	if res.Meta[models.MetaKeyPaymentURL] != "https://paymentsetu.com/pay/abc" {
		t.Fatalf("expected payment URL metadata, got %v", res.Meta)
	}
}
