package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"harveys-cafe/payment-svc/internal/domain"
	"harveys-cafe/payment-svc/internal/service"
)

const DefaultRazorpayURL = "https://api.razorpay.com/v1"

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// RazorpayClient talks to the Razorpay orders API with key id/secret basic auth.
type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	HTTP      *http.Client
}

var _ service.PaymentGateway = (*RazorpayClient)(nil)

func NewRazorpayClient(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayClient {
	if baseURL == "" {
		baseURL = DefaultRazorpayURL
	}
	return &RazorpayClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

func (c *RazorpayClient) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(c.KeyID, c.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        payload.Error.Code,
			Description: payload.Error.Description,
		}
	}

	var order domain.GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode razorpay order: %w", err)
	}
	return &order, nil
}
