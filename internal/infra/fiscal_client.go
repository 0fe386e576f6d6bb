package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
)

// fiscalIssuePayload is sent to the fiscal sidecar, which handles SEFAZ
// authentication and NFC-e transmission and returns the authorized document.
type fiscalIssuePayload struct {
	SaleID       string           `json:"sale_id"`
	DocumentType string           `json:"document_type"` // "nfce" | "nfe"
	Total        float64          `json:"total"`
	TaxAmount    float64          `json:"tax_amount"`
	Items        []fiscalItemLine `json:"items"`
}

type fiscalItemLine struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type fiscalIssueResponse struct {
	ExternalID string `json:"external_id"`
	Number     int64  `json:"number"`
	AccessKey  string `json:"access_key"`
	Status     string `json:"status"` // "authorized" | "rejected"
	Message    string `json:"message"`
}

type fiscalCancelPayload struct {
	ExternalID string `json:"external_id"`
	Reason     string `json:"reason"`
}

// FiscalClient talks to the fiscal sidecar over HTTP. Decoupling the SEFAZ
// protocol into a sidecar isolates authority outages from the core.
// Implements gateway.FiscalGateway.
type FiscalClient struct {
	sidecarURL string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewFiscalClient(sidecarURL string, cb *CircuitBreaker) *FiscalClient {
	return &FiscalClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cb:         cb,
	}
}

func (c *FiscalClient) Issue(ctx context.Context, req gateway.IssueRequest) (*gateway.IssuedDocument, error) {
	payload := fiscalIssuePayload{
		SaleID:       req.SaleID.String(),
		DocumentType: req.DocumentType,
		Total:        req.Total.InexactFloat64(),
		TaxAmount:    req.TaxAmount.InexactFloat64(),
	}
	for _, item := range req.Items {
		payload.Items = append(payload.Items, fiscalItemLine{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
		})
	}

	var result fiscalIssueResponse
	err := c.cb.Execute(func() error {
		return c.post(ctx, "/issue", payload, &result)
	})
	if err != nil {
		return nil, err
	}
	if result.Status != "authorized" {
		return nil, fmt.Errorf("fiscal: documento rejeitado: %s", result.Message)
	}
	return &gateway.IssuedDocument{
		ExternalID: result.ExternalID,
		Number:     result.Number,
		AccessKey:  result.AccessKey,
		Status:     result.Status,
	}, nil
}

func (c *FiscalClient) Cancel(ctx context.Context, externalID, reason string) error {
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.cb.Execute(func() error {
		return c.post(ctx, "/cancel", fiscalCancelPayload{ExternalID: externalID, Reason: reason}, &result)
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("fiscal: cancelamento recusado: %s", result.Message)
	}
	return nil
}

func (c *FiscalClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("fiscal: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fiscal: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fiscal: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fiscal: sidecar returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
