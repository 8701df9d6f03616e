package models

import (
	"time"

	"gorm.io/gorm"
)

// Deposit is a user funding request. FinalAmount = Amount - Fee and is the
// value credited on approval. TransactionData holds the opaque gateway or
// proof-of-payment payload supplied by the user.
type Deposit struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	OrderID         string     `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	PaymentMethodID uint       `gorm:"not null;index" json:"payment_method_id"`
	Amount          float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Fee             float64    `gorm:"type:decimal(15,2);not null;default:0" json:"fee"`
	FinalAmount     float64    `gorm:"type:decimal(15,2);not null" json:"final_amount"`
	Status          string     `gorm:"size:20;not null;index" json:"status"` // pending | approved | rejected
	TransactionData string     `gorm:"type:text" json:"transaction_data"`
	AdminNotes      string     `gorm:"size:500" json:"admin_notes"`
	ProcessedAt     *time.Time `json:"processed_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User          User          `gorm:"foreignKey:UserID" json:"-"`
	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

func (Deposit) TableName() string { return "deposits" }
