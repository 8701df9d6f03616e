package models

import (
	"time"

	"gorm.io/gorm"
)

// UserInvestment is one user's stake in one plan. DailyROI and EndDate
// are snapshotted at creation and never recomputed from the plan.
type UserInvestment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	PlanID         uint       `gorm:"not null;index" json:"plan_id"`
	OrderID        string     `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	Amount         float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DailyROI       float64    `gorm:"type:decimal(15,2);not null" json:"daily_roi"`
	TotalROIEarned float64    `gorm:"type:decimal(15,2);not null;default:0" json:"total_roi_earned"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	EndDate        time.Time  `gorm:"not null" json:"end_date"`
	NextClaimDate  time.Time  `gorm:"not null" json:"next_claim_date"`
	LastClaimDate  *time.Time `json:"last_claim_date"`
	IsActive       bool       `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User           `gorm:"foreignKey:UserID" json:"-"`
	Plan InvestmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (UserInvestment) TableName() string { return "user_investments" }

// MaxTotalROI is the theoretical payout ceiling for this stake:
// amount x daily percentage x duration. Claims are clamped so
// TotalROIEarned can never exceed it.
func (i *UserInvestment) MaxTotalROI(plan *InvestmentPlan) float64 {
	return i.Amount * plan.DailyROIPercentage * float64(plan.DurationDays) / 100
}
