package models

import (
	"time"

	"stakevault/internal/domain"

	"gorm.io/gorm"
)

// Transaction is an append-only ledger line. Amount is always positive;
// Direction carries the sign. Rows are never deleted; the only field
// ever updated after creation is Status, which tracks the linked
// withdrawal request's outcome.
type Transaction struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Type          string  `gorm:"size:30;not null;index" json:"type"`
	Direction     string  `gorm:"size:10;not null" json:"direction"` // credit | debit
	Amount        float64 `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceBefore float64 `gorm:"type:decimal(15,2);not null" json:"balance_before"`
	BalanceAfter  float64 `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description   string  `gorm:"size:255" json:"description"`
	Reference     string  `gorm:"size:64;index" json:"reference"` // e.g. deposit/withdrawal/investment order id
	Status        string  `gorm:"size:20;not null;index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

// Signed returns the balance delta this line represents.
func (t *Transaction) Signed() float64 {
	if t.Direction == domain.DirectionDebit {
		return -t.Amount
	}
	return t.Amount
}
