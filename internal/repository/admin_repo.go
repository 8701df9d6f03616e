package repository

import (
	"stakevault/internal/domain"
	"stakevault/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	ActiveInvestors    int64   `json:"active_investors"`
	TotalBalance       float64 `json:"total_balance"`
	TotalInvested      float64 `json:"total_invested"`
	TotalROIPaid       float64 `json:"total_roi_paid"`
	TotalReferralPaid  float64 `json:"total_referral_paid"`
	PendingDeposits    int64   `json:"pending_deposits"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	TotalTransactions  int64   `json:"total_transactions"`
	TotalReferrals     int64   `json:"total_referrals"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.User{}).Count(&s.TotalUsers)
	r.db.Model(&models.User{}).Where("has_active_plan = ?", true).Count(&s.ActiveInvestors)

	var sums struct {
		Balance  float64
		Invested float64
		ROI      float64
		Referral float64
	}
	r.db.Model(&models.User{}).
		Select("COALESCE(SUM(balance),0) as balance, COALESCE(SUM(total_invested),0) as invested, COALESCE(SUM(total_roi_earned),0) as roi, COALESCE(SUM(total_referral_earned),0) as referral").
		Scan(&sums)
	s.TotalBalance = sums.Balance
	s.TotalInvested = sums.Invested
	s.TotalROIPaid = sums.ROI
	s.TotalReferralPaid = sums.Referral

	r.db.Model(&models.Deposit{}).Where("status = ?", domain.RequestStatusPending).Count(&s.PendingDeposits)
	r.db.Model(&models.Withdrawal{}).Where("status = ?", domain.RequestStatusPending).Count(&s.PendingWithdrawals)
	r.db.Model(&models.Transaction{}).Count(&s.TotalTransactions)
	r.db.Model(&models.UserReferral{}).Count(&s.TotalReferrals)
	return &s, nil
}

// ListUsers returns users with search, role filter, and pagination.
func (r *AdminRepository) ListUsers(search, role string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if search != "" {
		q = q.Where("username LIKE ? OR email LIKE ? OR referral_code LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	q.Count(&total)
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}
