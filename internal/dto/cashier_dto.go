package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	Terminal      int             `json:"terminal"       validate:"required,min=1"`
	InitialAmount decimal.Decimal `json:"initial_amount" validate:"min=0"`
}

type CashMovementRequest struct {
	SessionID string          `json:"session_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount"     validate:"required,gt=0"`
	Reason    string          `json:"reason"     validate:"required,min=3"`
}

type CloseSessionRequest struct {
	SessionID     string          `json:"session_id"     validate:"required,uuid"`
	CountedAmount decimal.Decimal `json:"counted_amount" validate:"min=0"`
	Notes         *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID            string          `json:"id"`
	Terminal      int             `json:"terminal"`
	OperatorID    string          `json:"operator_id"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Status        string          `json:"status"`
	OpenedAt      string          `json:"opened_at"`
	ClosedAt      *string         `json:"closed_at,omitempty"`
}

type CashFlowEntryResponse struct {
	OperationType string          `json:"operation_type"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	CreatedAt     string          `json:"created_at"`
}

// CloseSessionResponse reports the reconciliation outcome. Discrepancy is
// advisory: counted minus expected, negative = missing cash.
type CloseSessionResponse struct {
	SessionID      string          `json:"session_id"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	CountedAmount  decimal.Decimal `json:"counted_amount"`
	Discrepancy    decimal.Decimal `json:"discrepancy"`
	Status         string          `json:"status"`
}

// SessionSummaryResponse is derived purely from ledger replay.
type SessionSummaryResponse struct {
	Session        SessionResponse         `json:"session"`
	InitialAmount  decimal.Decimal         `json:"initial_amount"`
	CashSales      decimal.Decimal         `json:"cash_sales"`
	Withdrawals    decimal.Decimal         `json:"withdrawals"`
	Deposits       decimal.Decimal         `json:"deposits"`
	Refunds        decimal.Decimal         `json:"refunds"`
	ExpectedAmount decimal.Decimal         `json:"expected_amount"`
	Discrepancy    *decimal.Decimal        `json:"discrepancy,omitempty"`
	Entries        []CashFlowEntryResponse `json:"entries"`
}
