package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a loyalty program member. LoyaltyPoints is adjusted by the
// checkout saga (accrual) and by points discounts (deduction).
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null"`
	Document      *string   `gorm:"type:varchar(20);uniqueIndex"` // CPF/CNPJ
	Email         *string
	Phone         *string
	LoyaltyPoints int `gorm:"not null;default:0"`
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
