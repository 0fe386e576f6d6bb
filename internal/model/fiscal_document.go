package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fiscal document statuses. A document stuck in "pending" after a gateway
// failure is re-attempted out-of-band by the fiscal retry worker.
const (
	FiscalPending   = "pending"
	FiscalIssued    = "issued"
	FiscalRejected  = "rejected"
	FiscalCancelled = "cancelled"
)

// FiscalDocument stores the government proof-of-sale linkage for a sale.
// Type: "nfce" | "nfe" | "none"
type FiscalDocument struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Type   string    `gorm:"type:varchar(10);not null"`
	// ExternalID / Number are assigned by the fiscal authority on issuance.
	ExternalID *string `gorm:"type:varchar(64)"`
	Number     *int64
	// AccessKey is the 44-digit NFC-e key printed on the receipt.
	AccessKey *string         `gorm:"type:varchar(44)"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;default:'pending'"`
	// Retry fields used by the retry cron to re-attempt failed issuances.
	RetryCount  int `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
