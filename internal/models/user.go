package models

import (
	"time"

	"stakevault/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // USER | ADMIN

	// Financial account. Balance is mutated only through the ledger
	// service; the cumulative counters never decrease.
	Balance             float64 `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	TotalInvested       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_invested"`
	TotalROIEarned      float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_roi_earned"`
	TotalReferralEarned float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_referral_earned"`
	HasActivePlan       bool    `gorm:"not null;default:false" json:"has_active_plan"`

	// ReferralCode is this user's own invite code. ReferredBy stores the
	// referrer's code string as a denormalized lookup convenience; the
	// authoritative upline relation is the user_referrals edge table.
	ReferralCode string `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	ReferredBy   string `gorm:"size:20;index" json:"referred_by"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
	IsBanned bool `gorm:"not null;default:false" json:"is_banned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
