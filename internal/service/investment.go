package service

import (
	"errors"
	"fmt"
	"time"

	"stakevault/internal/domain"
	"stakevault/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanInactive       = errors.New("plan is not active")
	ErrAmountOutOfRange   = errors.New("amount outside the allowed range")
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrNotInvestmentOwner = errors.New("investment belongs to another user")
	ErrNotClaimable       = errors.New("next claim date not reached")
	ErrAlreadyCompleted   = errors.New("investment already completed")
)

// InvestmentService runs the investment lifecycle: creation, daily ROI
// claims, and expiry completion. Each operation is a single database
// transaction; commissions are triggered after commit, best-effort.
type InvestmentService struct {
	db         *gorm.DB
	ledger     *LedgerService
	commission *CommissionService
	now        func() time.Time
}

func NewInvestmentService(db *gorm.DB, ledger *LedgerService, commission *CommissionService) *InvestmentService {
	return &InvestmentService{db: db, ledger: ledger, commission: commission, now: time.Now}
}

// Create validates the plan and amount, debits the principal, snapshots
// the daily ROI off the plan's current percentage, and opens the stake.
func (s *InvestmentService) Create(userID, planID uint, amount float64) (*models.UserInvestment, error) {
	now := s.now()
	var inv *models.UserInvestment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var plan models.InvestmentPlan
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		if !plan.IsActive {
			return ErrPlanInactive
		}
		if amount < plan.MinAmount || amount > plan.MaxAmount {
			return ErrAmountOutOfRange
		}
		orderID := "inv-" + uuid.New().String()
		if _, err := s.ledger.Debit(tx, Entry{
			UserID:      userID,
			Amount:      amount,
			Type:        domain.TxTypeInvestment,
			Reference:   orderID,
			Description: "Investment in " + plan.Name,
		}); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"total_invested":  gorm.Expr("total_invested + ?", amount),
			"has_active_plan": true,
		}).Error; err != nil {
			return err
		}
		inv = &models.UserInvestment{
			UserID:        userID,
			PlanID:        plan.ID,
			OrderID:       orderID,
			Amount:        amount,
			DailyROI:      round2(amount * plan.DailyROIPercentage / 100),
			StartDate:     now,
			EndDate:       now.AddDate(0, 0, plan.DurationDays),
			NextClaimDate: now.Add(24 * time.Hour),
			IsActive:      true,
		}
		return tx.Create(inv).Error
	})
	if err != nil {
		return nil, err
	}
	s.commission.Distribute(userID, amount, domain.SystemTypeInvestment)
	return inv, nil
}

// ClaimResult reports what a claim call did: a daily ROI payout, or the
// completion of an expired investment (with the principal returned when
// the plan says so).
type ClaimResult struct {
	Completed         bool    `json:"completed"`
	ROIPaid           float64 `json:"roi_paid"`
	PrincipalReturned float64 `json:"principal_returned"`
}

// Claim is the single user-facing transition. Past the end date it
// completes the investment; before the next claim date it refuses;
// otherwise it pays exactly one day's ROI no matter how much time has
// elapsed, and advances the claim window by 24h from its previous value.
func (s *InvestmentService) Claim(userID, investmentID uint) (*ClaimResult, error) {
	now := s.now()
	var res ClaimResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.UserInvestment
		if err := forUpdate(tx).First(&inv, investmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestmentNotFound
			}
			return err
		}
		if inv.UserID != userID {
			return ErrNotInvestmentOwner
		}
		var plan models.InvestmentPlan
		if err := tx.First(&plan, inv.PlanID).Error; err != nil {
			return err
		}

		if now.After(inv.EndDate) {
			// term elapsed: completion, not a ROI claim
			if !inv.IsActive {
				return ErrAlreadyCompleted
			}
			if err := tx.Model(&inv).Update("is_active", false).Error; err != nil {
				return err
			}
			if plan.ReturnPrincipal {
				if _, err := s.ledger.Credit(tx, Entry{
					UserID:      userID,
					Amount:      inv.Amount,
					Type:        domain.TxTypeDeposit,
					Reference:   inv.OrderID,
					Description: "Capital Return",
				}); err != nil {
					return err
				}
				res.PrincipalReturned = inv.Amount
			}
			var remaining int64
			if err := tx.Model(&models.UserInvestment{}).
				Where("user_id = ? AND is_active = ?", userID, true).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := tx.Model(&models.User{}).Where("id = ?", userID).
					Update("has_active_plan", false).Error; err != nil {
					return err
				}
			}
			res.Completed = true
			return nil
		}

		if !inv.IsActive {
			return ErrAlreadyCompleted
		}
		if now.Before(inv.NextClaimDate) {
			return ErrNotClaimable
		}
		pay := inv.DailyROI
		if max := inv.MaxTotalROI(&plan); inv.TotalROIEarned+pay > max {
			pay = round2(max - inv.TotalROIEarned)
		}
		if pay <= 0 {
			return ErrNotClaimable
		}
		if _, err := s.ledger.Credit(tx, Entry{
			UserID:      userID,
			Amount:      pay,
			Type:        domain.TxTypeROIClaim,
			Reference:   inv.OrderID,
			Description: fmt.Sprintf("Daily ROI for investment #%d", inv.ID),
		}); err != nil {
			return err
		}
		// the window advances from its previous value, not from now, and
		// a missed day is never paid retroactively
		if err := tx.Model(&inv).Updates(map[string]interface{}{
			"total_roi_earned": gorm.Expr("total_roi_earned + ?", pay),
			"last_claim_date":  now,
			"next_claim_date":  inv.NextClaimDate.Add(24 * time.Hour),
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("total_roi_earned", gorm.Expr("total_roi_earned + ?", pay)).Error; err != nil {
			return err
		}
		res.ROIPaid = pay
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.ROIPaid > 0 {
		s.commission.Distribute(userID, res.ROIPaid, domain.SystemTypeInterest)
	}
	return &res, nil
}
