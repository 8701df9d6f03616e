package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod is an admin-managed deposit/withdrawal channel whose fee
// percentage feeds the request fee computation.
type PaymentMethod struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Kind          string         `gorm:"size:20;not null" json:"kind"` // crypto | bank | gateway
	FeePercentage float64        `gorm:"type:decimal(5,2);not null;default:0" json:"fee_percentage"`
	MinAmount     float64        `gorm:"type:decimal(15,2);not null;default:0" json:"min_amount"`
	MaxAmount     float64        `gorm:"type:decimal(15,2);not null;default:0" json:"max_amount"` // 0 = unlimited
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }
