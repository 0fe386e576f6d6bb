package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cashier session statuses. Closed is terminal.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// CashierSession is the span during which one operator is accountable for a
// drawer. Status: "open" | "closed". Closed is terminal — reopening creates
// a new session.
type CashierSession struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperatorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Terminal      int             `gorm:"not null;index"`
	InitialAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CurrentAmount is a cached value: it must always equal a full replay of
	// the session's cash flow entries. The ledger is the source of truth.
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// FinalAmount is the physically counted cash recorded at close.
	FinalAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Discrepancy = FinalAmount - expected cash; advisory only, never blocks closing.
	Discrepancy *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status      string           `gorm:"type:varchar(20);not null;default:'open'"`
	Notes       *string
	OpenedAt    time.Time
	ClosedAt    *time.Time

	Entries []CashFlowEntry `gorm:"foreignKey:SessionID"`
}

// Cash flow operation types.
const (
	FlowInitialBalance = "initial_balance"
	FlowFinalBalance   = "final_balance"
	FlowWithdraw       = "withdraw"
	FlowDeposit        = "deposit"
	FlowSale           = "sale"
	FlowRefund         = "refund"
	FlowCorrection     = "correction"
)

// CashFlowEntry is an immutable row in the drawer ledger. Entries are NEVER
// updated or deleted — reversals append inverse entries, and reconciliation
// replays the whole ledger.
type CashFlowEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	// OperationType: "initial_balance" | "final_balance" | "withdraw" |
	// "deposit" | "sale" | "refund" | "correction"
	OperationType string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note          string          `gorm:"not null"`
	// ReferenceID links to the originating Sale where applicable.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// Signed returns the entry amount with the sign its operation type implies
// for drawer balance purposes. Balance markers contribute nothing.
func (e CashFlowEntry) Signed() decimal.Decimal {
	switch e.OperationType {
	case FlowWithdraw, FlowRefund:
		return e.Amount.Neg()
	case FlowSale, FlowDeposit, FlowCorrection:
		return e.Amount
	default: // initial_balance, final_balance are markers, not movements
		return decimal.Zero
	}
}
