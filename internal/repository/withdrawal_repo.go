package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.Preload("PaymentMethod").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) ListByUserID(userID uint, limit, offset int) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := r.db.Where("user_id = ?", userID).
		Preload("PaymentMethod").
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// List returns withdrawals for the admin queue, optionally filtered by status.
func (r *WithdrawalRepository) List(status string, limit, offset int) ([]models.Withdrawal, int64, error) {
	q := r.db.Model(&models.Withdrawal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Withdrawal
	err := q.Preload("PaymentMethod").Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
