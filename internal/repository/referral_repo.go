package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// CreateEdge records a direct referral relationship.
func (r *ReferralRepository) CreateEdge(edge *models.UserReferral) error {
	return r.db.Create(edge).Error
}

// GetEdgeByReferredUserID returns the edge pointing at the user's direct
// referrer. This is the single authoritative upline lookup; walking it
// repeatedly reaches deeper levels.
func (r *ReferralRepository) GetEdgeByReferredUserID(userID uint) (*models.UserReferral, error) {
	var edge models.UserReferral
	if err := r.db.Where("referred_user_id = ?", userID).First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *ReferralRepository) ListByReferrerID(referrerID uint, limit, offset int) ([]models.UserReferral, error) {
	var list []models.UserReferral
	err := r.db.Where("referrer_id = ?", referrerID).
		Preload("ReferredUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *ReferralRepository) CountByReferrerID(referrerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserReferral{}).Where("referrer_id = ?", referrerID).Count(&count).Error
	return count, err
}
