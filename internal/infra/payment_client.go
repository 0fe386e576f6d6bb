package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
)

// PaymentClient talks to the payment acquirer's capture API over HTTP.
// Implements gateway.PaymentGateway.
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewPaymentClient(baseURL string, cb *CircuitBreaker) *PaymentClient {
	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cb:         cb,
	}
}

type captureResponse struct {
	Approved          bool   `json:"approved"`
	TransactionID     string `json:"transaction_id"`
	AuthorizationCode string `json:"authorization_code"`
	Message           string `json:"message"`
}

func (c *PaymentClient) Capture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	payload := map[string]interface{}{
		"sale_id": req.SaleID.String(),
		"method":  req.Method,
		"amount":  req.Amount.InexactFloat64(),
	}

	var result captureResponse
	err := c.cb.Execute(func() error {
		return c.post(ctx, "/capture", payload, &result)
	})
	if err != nil {
		return nil, err
	}
	return &gateway.CaptureResult{
		Approved:          result.Approved,
		TransactionID:     result.TransactionID,
		AuthorizationCode: result.AuthorizationCode,
		Message:           result.Message,
	}, nil
}

func (c *PaymentClient) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	payload := map[string]interface{}{
		"transaction_id": transactionID,
		"amount":         amount.InexactFloat64(),
	}
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.cb.Execute(func() error {
		return c.post(ctx, "/refund", payload, &result)
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("payment: estorno recusado: %s", result.Message)
	}
	return nil
}

func (c *PaymentClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("payment: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("payment: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment: gateway returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
