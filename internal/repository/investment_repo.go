package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) GetByID(id uint) (*models.UserInvestment, error) {
	var inv models.UserInvestment
	if err := r.db.Preload("Plan").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) ListByUserID(userID uint, limit, offset int) ([]models.UserInvestment, error) {
	var list []models.UserInvestment
	err := r.db.Where("user_id = ?", userID).
		Preload("Plan").
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// CountActiveByUserID is used to recompute the has_active_plan flag.
func (r *InvestmentRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserInvestment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
