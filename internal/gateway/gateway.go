// Package gateway declares the narrow contracts the transaction core uses
// to talk to external collaborators: stock, payment capture, fiscal
// authority, and the financial ledger. HTTP-backed implementations live in
// internal/infra; tests plug in fakes.
package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLine is one product/quantity pair of a sale, as seen by the stock
// collaborator.
type StockLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
}

// Shortage reports a product whose available stock is below the requested
// quantity.
type Shortage struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

// StockGateway checks and mutates inventory.
type StockGateway interface {
	// CheckAvailability returns one Shortage per under-stocked line; an
	// empty slice means every line can be served.
	CheckAvailability(ctx context.Context, lines []StockLine) ([]Shortage, error)
	// Decrement removes sold quantities from stock, tagged with the sale id.
	Decrement(ctx context.Context, saleID uuid.UUID, lines []StockLine) error
	// Restock returns cancelled quantities to stock.
	Restock(ctx context.Context, saleID uuid.UUID, lines []StockLine) error
}

// CaptureRequest asks the payment collaborator to authorize a non-cash
// tender.
type CaptureRequest struct {
	SaleID uuid.UUID
	Method string
	Amount decimal.Decimal
}

// CaptureResult is the collaborator's answer. Approved=false carries the
// decline reason in Message.
type CaptureResult struct {
	Approved          bool
	TransactionID     string
	AuthorizationCode string
	Message           string
}

// PaymentGateway authorizes and reverses non-cash payments.
type PaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error
}

// IssueRequest carries the sale data the fiscal authority needs.
type IssueRequest struct {
	SaleID       uuid.UUID
	DocumentType string // "nfce" | "nfe"
	Total        decimal.Decimal
	TaxAmount    decimal.Decimal
	Items        []IssueItem
}

type IssueItem struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// IssuedDocument is returned on successful issuance.
type IssuedDocument struct {
	ExternalID string
	Number     int64
	AccessKey  string
	Status     string
}

// FiscalGateway issues and cancels government sale documents.
type FiscalGateway interface {
	Issue(ctx context.Context, req IssueRequest) (*IssuedDocument, error)
	Cancel(ctx context.Context, externalID, reason string) error
}

// Booking registers an income (sale) or expense (cancellation reversal)
// transaction in the financial ledger, one per tender.
type Booking struct {
	SaleID      uuid.UUID
	Method      string
	Amount      decimal.Decimal
	Description string
}

// LedgerGateway books financial transactions.
type LedgerGateway interface {
	RegisterSale(ctx context.Context, bookings []Booking) error
	RegisterCancellation(ctx context.Context, bookings []Booking) error
}
