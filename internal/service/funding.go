package service

import (
	"errors"
	"time"

	"stakevault/internal/domain"
	"stakevault/internal/models"
	"stakevault/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrDepositNotFound       = errors.New("deposit not found")
	ErrWithdrawalNotFound    = errors.New("withdrawal not found")
	ErrAlreadyProcessed      = errors.New("request already processed")
	ErrInvalidStatus         = errors.New("status must be approved or rejected")
)

// FundingService handles deposit and withdrawal requests and their
// admin approval flows. Deposits credit on approval; withdrawals debit
// at request time, so approval only flips status and rejection refunds.
type FundingService struct {
	db         *gorm.DB
	ledger     *LedgerService
	commission *CommissionService
	methods    *repository.PaymentMethodRepository
	now        func() time.Time
}

func NewFundingService(
	db *gorm.DB,
	ledger *LedgerService,
	commission *CommissionService,
	methods *repository.PaymentMethodRepository,
) *FundingService {
	return &FundingService{db: db, ledger: ledger, commission: commission, methods: methods, now: time.Now}
}

// RequestDeposit records a pending funding request. No balance mutation
// happens until an admin approves it.
func (s *FundingService) RequestDeposit(userID, methodID uint, amount float64, transactionData string) (*models.Deposit, error) {
	method, err := s.methods.GetActiveByID(methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	if err := checkMethodRange(method, amount); err != nil {
		return nil, err
	}
	fee := round2(amount * method.FeePercentage / 100)
	dep := &models.Deposit{
		UserID:          userID,
		OrderID:         "dep-" + uuid.New().String(),
		PaymentMethodID: method.ID,
		Amount:          amount,
		Fee:             fee,
		FinalAmount:     round2(amount - fee),
		Status:          domain.RequestStatusPending,
		TransactionData: transactionData,
	}
	if err := s.db.Create(dep).Error; err != nil {
		return nil, err
	}
	return dep, nil
}

// ProcessDeposit is the admin transition pending -> approved|rejected.
// Approval credits final_amount and triggers the deposit commission walk;
// a second attempt on the same deposit fails with ErrAlreadyProcessed.
func (s *FundingService) ProcessDeposit(depositID uint, status, adminNotes string) (*models.Deposit, error) {
	if status != domain.RequestStatusApproved && status != domain.RequestStatusRejected {
		return nil, ErrInvalidStatus
	}
	var dep models.Deposit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&dep, depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepositNotFound
			}
			return err
		}
		if dep.Status != domain.RequestStatusPending {
			return ErrAlreadyProcessed
		}
		if status == domain.RequestStatusApproved {
			if _, err := s.ledger.Credit(tx, Entry{
				UserID:      dep.UserID,
				Amount:      dep.FinalAmount,
				Type:        domain.TxTypeDeposit,
				Reference:   dep.OrderID,
				Description: "Deposit " + dep.OrderID,
			}); err != nil {
				return err
			}
		}
		now := s.now()
		dep.Status = status
		dep.AdminNotes = adminNotes
		dep.ProcessedAt = &now
		return tx.Model(&models.Deposit{}).Where("id = ?", dep.ID).Updates(map[string]interface{}{
			"status":       status,
			"admin_notes":  adminNotes,
			"processed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	if status == domain.RequestStatusApproved {
		s.commission.Distribute(dep.UserID, dep.FinalAmount, domain.SystemTypeDeposit)
	}
	return &dep, nil
}

// RequestWithdrawal debits the full amount immediately and records a
// pending withdrawal together with its pending ledger line.
func (s *FundingService) RequestWithdrawal(userID, methodID uint, amount float64, accountDetails string) (*models.Withdrawal, error) {
	method, err := s.methods.GetActiveByID(methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	if err := checkMethodRange(method, amount); err != nil {
		return nil, err
	}
	fee := round2(amount * method.FeePercentage / 100)
	w := &models.Withdrawal{
		UserID:          userID,
		OrderID:         "wd-" + uuid.New().String(),
		PaymentMethodID: method.ID,
		Amount:          amount,
		Fee:             fee,
		FinalAmount:     round2(amount - fee),
		AccountDetails:  accountDetails,
		Status:          domain.RequestStatusPending,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ledger.Debit(tx, Entry{
			UserID:      userID,
			Amount:      amount,
			Type:        domain.TxTypeWithdrawal,
			Status:      domain.TxStatusPending,
			Reference:   w.OrderID,
			Description: "Withdrawal " + w.OrderID,
		}); err != nil {
			return err
		}
		return tx.Create(w).Error
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ProcessWithdrawal is the admin transition pending -> approved|rejected.
// The balance was debited at request time: approval performs no further
// mutation, rejection refunds the amount. The linked ledger line's
// status follows the withdrawal's outcome.
func (s *FundingService) ProcessWithdrawal(withdrawalID uint, status, adminNotes string) (*models.Withdrawal, error) {
	if status != domain.RequestStatusApproved && status != domain.RequestStatusRejected {
		return nil, ErrInvalidStatus
	}
	var w models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&w, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWithdrawalNotFound
			}
			return err
		}
		if w.Status != domain.RequestStatusPending {
			return ErrAlreadyProcessed
		}
		txStatus := domain.TxStatusCompleted
		if status == domain.RequestStatusRejected {
			txStatus = domain.TxStatusRejected
			if _, err := s.ledger.Credit(tx, Entry{
				UserID:      w.UserID,
				Amount:      w.Amount,
				Type:        domain.TxTypeRefund,
				Reference:   w.OrderID,
				Description: "Withdrawal refund " + w.OrderID,
			}); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Transaction{}).
			Where("reference = ? AND type = ?", w.OrderID, domain.TxTypeWithdrawal).
			Update("status", txStatus).Error; err != nil {
			return err
		}
		now := s.now()
		w.Status = status
		w.AdminNotes = adminNotes
		w.ProcessedAt = &now
		return tx.Model(&models.Withdrawal{}).Where("id = ?", w.ID).Updates(map[string]interface{}{
			"status":       status,
			"admin_notes":  adminNotes,
			"processed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func checkMethodRange(m *models.PaymentMethod, amount float64) error {
	if amount <= 0 || amount < m.MinAmount {
		return ErrAmountOutOfRange
	}
	if m.MaxAmount > 0 && amount > m.MaxAmount {
		return ErrAmountOutOfRange
	}
	return nil
}
