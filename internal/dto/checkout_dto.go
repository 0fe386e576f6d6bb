package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CheckoutItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
}

type TenderRequest struct {
	Method string          `json:"method" validate:"required,oneof=cash credit debit pix voucher other"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	// CashReceived is the physical cash handed over; cash tenders only.
	CashReceived *decimal.Decimal `json:"cash_received" validate:"omitempty"`
}

type DiscountRequest struct {
	Kind  string          `json:"kind"  validate:"required,oneof=percentage fixed points"`
	Value decimal.Decimal `json:"value" validate:"min=0"`
}

type CheckoutRequest struct {
	SessionID string                `json:"session_id" validate:"required,uuid"`
	Items     []CheckoutItemRequest `json:"items"      validate:"required,min=1,dive"`
	Tenders   []TenderRequest       `json:"tenders"    validate:"required,min=1,dive"`
	Discount  *DiscountRequest      `json:"discount"   validate:"omitempty"`
	// CustomerID enables loyalty accrual and points discounts.
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`
	// FiscalDocumentType: "nfce" | "nfe" | "none"
	FiscalDocumentType string `json:"fiscal_document_type" validate:"required,oneof=nfce nfe none"`
}

type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	Product   string          `json:"product"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type SaleTenderResponse struct {
	Method       string           `json:"method"`
	Amount       decimal.Decimal  `json:"amount"`
	CashReceived *decimal.Decimal `json:"cash_received,omitempty"`
	CashChange   *decimal.Decimal `json:"cash_change,omitempty"`
}

type FiscalDocumentResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Number    *int64  `json:"number"`
	AccessKey *string `json:"access_key"`
	Status    string  `json:"status"`
}

type SaleResponse struct {
	ID             string                  `json:"id"`
	TicketNumber   int                     `json:"ticket_number"`
	SessionID      string                  `json:"session_id"`
	Items          []SaleItemResponse      `json:"items"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	DiscountAmount decimal.Decimal         `json:"discount_amount"`
	TaxAmount      decimal.Decimal         `json:"tax_amount"`
	Total          decimal.Decimal         `json:"total"`
	Tenders        []SaleTenderResponse    `json:"tenders"`
	Change         decimal.Decimal         `json:"change"`
	Status         string                  `json:"status"`
	Fiscal         *FiscalDocumentResponse `json:"fiscal,omitempty"`
	// Warnings lists best-effort steps that failed; the sale itself succeeded.
	Warnings  fault.Warnings `json:"warnings,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date      string `form:"date"`                      // YYYY-MM-DD; empty = today
	Status    string `form:"status,default=completed"`  // completed | cancelled | all
	SessionID string `form:"session_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
