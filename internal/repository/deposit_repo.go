package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(d *models.Deposit) error {
	return r.db.Create(d).Error
}

func (r *DepositRepository) GetByID(id uint) (*models.Deposit, error) {
	var d models.Deposit
	if err := r.db.Preload("PaymentMethod").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepositRepository) ListByUserID(userID uint, limit, offset int) ([]models.Deposit, error) {
	var list []models.Deposit
	err := r.db.Where("user_id = ?", userID).
		Preload("PaymentMethod").
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// List returns deposits for the admin queue, optionally filtered by status.
func (r *DepositRepository) List(status string, limit, offset int) ([]models.Deposit, int64, error) {
	q := r.db.Model(&models.Deposit{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Deposit
	err := q.Preload("PaymentMethod").Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
