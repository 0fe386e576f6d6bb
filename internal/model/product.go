package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. StockQuantity is maintained by the stock
// gateway; the checkout saga snapshots price and tax rate into SaleItem.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// TaxRate is the embedded tax percentage applied to this product.
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinimumStock  int             `gorm:"not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockMovement records every stock change for audit purposes.
// Type: "sale" | "restock_cancellation" | "manual_adjustment"
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null"`
	// Quantity is signed: positive = into stock, negative = out.
	Quantity      int `gorm:"not null"`
	StockBefore   int `gorm:"not null"`
	StockAfter    int `gorm:"not null"`
	Reason        string
	ReferenceID   *uuid.UUID `gorm:"type:uuid"` // sale id when triggered by checkout
	CreatedAt     time.Time
}
