package repository

import (
	"stakevault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferralSettingRepository struct {
	db *gorm.DB
}

func NewReferralSettingRepository(db *gorm.DB) *ReferralSettingRepository {
	return &ReferralSettingRepository{db: db}
}

// ListActiveByType returns the active commission settings for one system
// type, ordered by level ascending. The distributor walks these in order.
func (r *ReferralSettingRepository) ListActiveByType(systemType string) ([]models.ReferralSetting, error) {
	var list []models.ReferralSetting
	err := r.db.Where("system_type = ? AND is_active = ?", systemType, true).
		Order("level_number ASC").
		Find(&list).Error
	return list, err
}

func (r *ReferralSettingRepository) ListAll() ([]models.ReferralSetting, error) {
	var list []models.ReferralSetting
	err := r.db.Order("system_type ASC, level_number ASC").Find(&list).Error
	return list, err
}

// Upsert creates or replaces the setting for (system_type, level_number).
func (r *ReferralSettingRepository) Upsert(s *models.ReferralSetting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "system_type"}, {Name: "level_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"commission_percentage", "is_active",
			"required_referrals", "required_investment", "required_team_volume",
			"reward_type", "reward_amount", "updated_at",
		}),
	}).Create(s).Error
}

func (r *ReferralSettingRepository) Delete(id uint) error {
	return r.db.Delete(&models.ReferralSetting{}, id).Error
}
