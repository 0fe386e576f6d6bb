package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. A sale is immutable once completed or cancelled; the only
// allowed transitions are pending → completed and completed → cancelled.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Sale is the finalized transaction record with its line and tender
// snapshots. Written in status "pending" at the start of checkout and
// flipped to "completed" only after inventory and financial booking ran.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber   int             `gorm:"uniqueIndex;not null"`
	SessionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperatorID     uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes          *string
	CreatedAt      time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time

	Items   []SaleItem   `gorm:"foreignKey:SaleID"`
	Tenders []SaleTender `gorm:"foreignKey:SaleID"`
	// FiscalDocument is nil when the sale was issued without a document.
	FiscalDocument *FiscalDocument `gorm:"foreignKey:SaleID"`
}

// SaleItem is the immutable snapshot of one cart line at checkout time.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	SKU       string    `gorm:"not null"`
	// Name is snapshotted so renaming the product never rewrites history.
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// SaleTender records one payment applied to the sale.
// Method: "cash" | "credit" | "debit" | "pix" | "voucher" | "other"
// CashReceived/CashChange are set only for cash.
type SaleTender struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method string          `gorm:"type:varchar(20);not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TransactionID / AuthorizationCode come from the payment gateway for
	// captured (non-cash) tenders.
	TransactionID     *string          `gorm:"type:varchar(64)"`
	AuthorizationCode *string          `gorm:"type:varchar(64)"`
	CashReceived      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CashChange        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt         time.Time
}
