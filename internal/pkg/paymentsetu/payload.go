package paymentsetu

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status is the closed set of webhook payment statuses. Provider values
// outside the known set are carried as StatusOther with the raw string
// preserved, so new provider statuses never break processing.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
	StatusOther   Status = "other"
)

// Payload is a parsed, structurally validated webhook notification. It is
// still untrusted business data: amounts and order references are checked
// against local state by the reconciler.
type Payload struct {
	OrderID       string
	Status        Status
	RawStatus     string
	Amount        int64
	TxnUTR        string
	CustomerUPIID string
	TxnTime       string

	raw []byte
}

// Raw returns the body bytes the payload was parsed from.
func (p *Payload) Raw() []byte {
	return p.raw
}

// ParsePayload decodes a verified webhook body. The body must be a JSON
// object with non-empty order_id and status; a missing or non-numeric amount
// coerces to zero, which on the success path forces an amount mismatch.
func ParsePayload(raw []byte) (*Payload, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ErrMalformedPayload
	}

	orderID := stringField(obj, "order_id")
	rawStatus := stringField(obj, "status")
	if orderID == "" || rawStatus == "" {
		return nil, ErrMissingFields
	}

	p := &Payload{
		OrderID:       orderID,
		RawStatus:     rawStatus,
		Amount:        amountField(obj, "amount"),
		TxnUTR:        stringField(obj, "txn_utr"),
		CustomerUPIID: stringField(obj, "customer_upi_id"),
		TxnTime:       stringField(obj, "txn_time"),
		raw:           append([]byte(nil), raw...),
	}

	switch rawStatus {
	case "success":
		p.Status = StatusSuccess
	case "failed":
		p.Status = StatusFailed
	case "expired":
		p.Status = StatusExpired
	default:
		p.Status = StatusOther
	}

	return p, nil
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// amountField coerces the amount the way the provider sends it: a JSON
// number, a numeric string, or absent. Anything else counts as zero.
func amountField(obj map[string]any, key string) int64 {
	switch v := obj[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
