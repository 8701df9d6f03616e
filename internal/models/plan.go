package models

import (
	"time"

	"gorm.io/gorm"
)

// InvestmentPlan is a template, not a ledger entity. Live investments
// snapshot DailyROIPercentage at creation, so editing a plan never
// retroactively changes an existing investment's daily payout.
type InvestmentPlan struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	MinAmount          float64        `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount          float64        `gorm:"type:decimal(15,2);not null" json:"max_amount"`
	DailyROIPercentage float64        `gorm:"type:decimal(5,2);not null" json:"daily_roi_percentage"`
	DurationDays       int            `gorm:"not null" json:"duration_days"`
	ReturnPrincipal    bool           `gorm:"not null;default:false" json:"return_principal"`
	IsActive           bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InvestmentPlan) TableName() string { return "investment_plans" }
