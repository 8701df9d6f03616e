package models

import (
	"time"

	"gorm.io/gorm"
)

// UserReferral is a direct (level-1) edge in the referral graph. Deeper
// levels are reached by walking edges, not stored. This table is the
// authoritative upline representation; users.referred_by is a
// denormalized copy of the referrer's code.
type UserReferral struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	ReferrerID       uint    `gorm:"not null;index" json:"referrer_id"`
	ReferredUserID   uint    `gorm:"uniqueIndex;not null" json:"referred_user_id"` // a user can only be referred once
	LevelNumber      int     `gorm:"not null;default:1" json:"level_number"`
	CommissionEarned float64 `gorm:"type:decimal(15,2);not null;default:0" json:"commission_earned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Referrer     User `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	ReferredUser User `gorm:"foreignKey:ReferredUserID" json:"referred_user,omitempty"`
}

func (UserReferral) TableName() string { return "user_referrals" }

// ReferralSetting configures the commission percentage for one
// (system_type, level_number) pair. The career/matching qualification
// fields are stored and editable but not evaluated by any distributor.
type ReferralSetting struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	SystemType           string  `gorm:"size:20;not null;uniqueIndex:idx_system_level" json:"system_type"`
	LevelNumber          int     `gorm:"not null;uniqueIndex:idx_system_level" json:"level_number"`
	CommissionPercentage float64 `gorm:"type:decimal(5,2);not null" json:"commission_percentage"`
	IsActive             bool    `gorm:"not null;default:true" json:"is_active"`

	RequiredReferrals  int     `gorm:"not null;default:0" json:"required_referrals"`
	RequiredInvestment float64 `gorm:"type:decimal(15,2);not null;default:0" json:"required_investment"`
	RequiredTeamVolume float64 `gorm:"type:decimal(15,2);not null;default:0" json:"required_team_volume"`
	RewardType         string  `gorm:"size:20" json:"reward_type"`
	RewardAmount       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"reward_amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReferralSetting) TableName() string { return "referral_settings" }
