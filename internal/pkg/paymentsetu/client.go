package paymentsetu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cartsetu/CartSetu/internal/pkg/env"
)

const defaultAPIBaseURL = "https://paymentsetu.com/api"

// Error codes returned by the provider in APIResponse.ErrorCode.
const (
	ErrorCodeAlreadyPaid     = "ALREADY_PAID"
	ErrorCodeCreditExhausted = "CREDIT_EXHAUSTED"
)

// Client talks to the PaymentSetu REST API using bearer-token auth.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// CreateOrderRequest is the body for POST /create_order. Empty optional
// fields are omitted from the wire format rather than sent as empty strings.
type CreateOrderRequest struct {
	OrderID        string `json:"order_id"`
	Amount         int64  `json:"amount"`
	RedirectURL    string `json:"redirect_url"`
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerEmail  string `json:"customer_email,omitempty"`
	CustomerMobile string `json:"customer_mobile,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
}

// APIResponse is the provider's envelope for both create_order and
// check_credits. Status false carries an optional machine error code.
type APIResponse struct {
	Status     bool     `json:"status"`
	PaymentURL string   `json:"payment_url,omitempty"`
	Msg        string   `json:"msg,omitempty"`
	ErrorCode  string   `json:"error_code,omitempty"`
	Credits    *Credits `json:"credits,omitempty"`
}

// Credits reports the account balance on the provider side.
type Credits struct {
	RemainingCredits   int    `json:"remaining_credits"`
	SubscriptionStatus string `json:"subscription_status"`
}

// NewClient builds a client for the given API key. The base URL can be
// overridden via PAYMENTSETU_API_BASE_URL for staging and tests.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  strings.TrimSpace(apiKey),
		BaseURL: strings.TrimRight(env.GetEnv("PAYMENTSETU_API_BASE_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateOrder creates a hosted payment session for an order.
//
// Provider-level failures (status false, error codes) are returned inside
// APIResponse; only transport errors and non-JSON bodies produce an error.
func (c *Client) CreateOrder(ctx context.Context, in *CreateOrderRequest) (*APIResponse, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("paymentsetu api key is required")
	}
	if in == nil || strings.TrimSpace(in.OrderID) == "" {
		return nil, errors.New("order_id is required")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/create_order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

// CheckCredits fetches the remaining API credits and subscription status.
func (c *Client) CheckCredits(ctx context.Context) (*APIResponse, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("paymentsetu api key is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/check_credits", nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*APIResponse, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	// The provider reports business failures as status=false JSON bodies,
	// sometimes on non-2xx codes. Parse whatever came back and only treat
	// non-JSON as a transport-level failure.
	var out APIResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unexpected API response (HTTP %d)", resp.StatusCode)
	}
	return &out, nil
}
