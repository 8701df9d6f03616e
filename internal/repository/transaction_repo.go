package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByUserID(userID uint, txType string, limit, offset int) ([]models.Transaction, int64, error) {
	q := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	var total int64
	q.Count(&total)
	var list []models.Transaction
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *TransactionRepository) List(userID uint, txType, status string, limit, offset int) ([]models.Transaction, int64, error) {
	q := r.db.Model(&models.Transaction{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Transaction
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
