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

// LedgerClient books income and expense transactions in the financial
// system, one entry per tender. Implements gateway.LedgerGateway.
type LedgerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLedgerClient(baseURL string) *LedgerClient {
	return &LedgerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type ledgerEntryPayload struct {
	SaleID      string  `json:"sale_id"`
	Kind        string  `json:"kind"` // "income" | "expense"
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (c *LedgerClient) RegisterSale(ctx context.Context, bookings []gateway.Booking) error {
	return c.register(ctx, "income", bookings)
}

func (c *LedgerClient) RegisterCancellation(ctx context.Context, bookings []gateway.Booking) error {
	return c.register(ctx, "expense", bookings)
}

func (c *LedgerClient) register(ctx context.Context, kind string, bookings []gateway.Booking) error {
	entries := make([]ledgerEntryPayload, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, ledgerEntryPayload{
			SaleID:      b.SaleID.String(),
			Kind:        kind,
			Method:      b.Method,
			Amount:      b.Amount.InexactFloat64(),
			Description: b.Description,
		})
	}

	body, err := json.Marshal(map[string]interface{}{"entries": entries})
	if err != nil {
		return fmt.Errorf("ledger: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ledger: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("ledger: service returned %d", resp.StatusCode)
	}
	return nil
}
