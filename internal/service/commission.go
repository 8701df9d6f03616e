package service

import (
	"errors"
	"fmt"

	"stakevault/internal/domain"
	"stakevault/internal/models"
	"stakevault/internal/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CommissionService walks a user's upline and credits each configured
// level a percentage of the triggering amount. Distribution is
// best-effort: every failure is logged and skipped, never returned, so a
// failed commission can never block or roll back the operation that
// triggered it.
type CommissionService struct {
	db        *gorm.DB
	ledger    *LedgerService
	settings  *repository.ReferralSettingRepository
	referrals *repository.ReferralRepository
}

func NewCommissionService(
	db *gorm.DB,
	ledger *LedgerService,
	settings *repository.ReferralSettingRepository,
	referrals *repository.ReferralRepository,
) *CommissionService {
	return &CommissionService{db: db, ledger: ledger, settings: settings, referrals: referrals}
}

// Distribute credits the upline of sourceUserID for a triggering amount.
// systemType selects the setting rows (deposit, investment or interest).
// The upline is discovered by repeatedly following user_referrals edges;
// the walk stops at the first user with no referrer, at the highest
// configured level, at domain.MaxReferralDepth, or on a repeated user.
func (s *CommissionService) Distribute(sourceUserID uint, amount float64, systemType string) {
	settings, err := s.settings.ListActiveByType(systemType)
	if err != nil {
		log.WithError(err).WithField("system_type", systemType).Warn("commission settings load failed")
		return
	}
	if len(settings) == 0 {
		return
	}
	byLevel := make(map[int]models.ReferralSetting, len(settings))
	maxLevel := 0
	for _, st := range settings {
		byLevel[st.LevelNumber] = st
		if st.LevelNumber > maxLevel {
			maxLevel = st.LevelNumber
		}
	}
	if maxLevel > domain.MaxReferralDepth {
		maxLevel = domain.MaxReferralDepth
	}

	txType := domain.TxTypeReferralCommission
	if systemType == domain.SystemTypeDeposit {
		txType = domain.TxTypeReferralBonus
	}

	visited := map[uint]bool{sourceUserID: true}
	current := sourceUserID
	for level := 1; level <= maxLevel; level++ {
		edge, err := s.referrals.GetEdgeByReferredUserID(current)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.WithError(err).WithField("user_id", current).Warn("upline lookup failed")
			}
			return // top of the upline
		}
		referrer := edge.ReferrerID
		if visited[referrer] {
			log.WithFields(log.Fields{"user_id": referrer, "level": level}).Warn("referral cycle detected, stopping walk")
			return
		}
		visited[referrer] = true

		if st, ok := byLevel[level]; ok {
			commission := round2(amount * st.CommissionPercentage / 100)
			if commission > 0 {
				// each level runs in its own transaction so one failing
				// credit never blocks the rest of the walk
				creditErr := s.db.Transaction(func(tx *gorm.DB) error {
					if _, err := s.ledger.Credit(tx, Entry{
						UserID:      referrer,
						Amount:      commission,
						Type:        txType,
						Description: fmt.Sprintf("Level %d %s commission", level, systemType),
					}); err != nil {
						return err
					}
					if err := tx.Model(&models.User{}).Where("id = ?", referrer).
						UpdateColumn("total_referral_earned", gorm.Expr("total_referral_earned + ?", commission)).Error; err != nil {
						return err
					}
					return tx.Model(&models.UserReferral{}).Where("id = ?", edge.ID).
						UpdateColumn("commission_earned", gorm.Expr("commission_earned + ?", commission)).Error
				})
				if creditErr != nil {
					log.WithError(creditErr).WithFields(log.Fields{
						"referrer_id": referrer,
						"level":       level,
						"system_type": systemType,
					}).Warn("commission credit failed")
				}
			}
		}
		current = referrer
	}
}
