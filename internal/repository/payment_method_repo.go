package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) Create(m *models.PaymentMethod) error {
	return r.db.Create(m).Error
}

func (r *PaymentMethodRepository) GetActiveByID(id uint) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PaymentMethodRepository) ListActive() ([]models.PaymentMethod, error) {
	var list []models.PaymentMethod
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *PaymentMethodRepository) ListAll() ([]models.PaymentMethod, error) {
	var list []models.PaymentMethod
	err := r.db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *PaymentMethodRepository) Update(m *models.PaymentMethod) error {
	return r.db.Save(m).Error
}

func (r *PaymentMethodRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentMethod{}, id).Error
}
