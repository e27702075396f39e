package paymentsetu

import "errors"

// Terminal request errors, mapped to HTTP classes by the webhook controller.
// Business rule outcomes (amount mismatch, unknown status, already paid) are
// not errors; they resolve to 200 responses.
var (
	// ErrNotConfigured means the gateway API key is missing (500-class).
	ErrNotConfigured = errors.New("paymentsetu gateway is not configured")
	// ErrMissingHeaders means the signature or timestamp header was absent (401-class).
	ErrMissingHeaders = errors.New("missing security headers")
	// ErrInvalidSignature means the HMAC check failed (401-class).
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedPayload means the body was not a JSON object (400-class).
	ErrMalformedPayload = errors.New("invalid JSON payload")
	// ErrMissingFields means order_id or status was absent/empty (400-class).
	ErrMissingFields = errors.New("missing required fields")
)
