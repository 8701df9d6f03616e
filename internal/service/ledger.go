package service

import (
	"errors"
	"math"

	"stakevault/internal/domain"
	"stakevault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrUserNotFound      = errors.New("user not found")
)

// Entry describes a single balance mutation. Status defaults to
// completed; Reference links the ledger line to the originating
// deposit/withdrawal/investment order.
type Entry struct {
	UserID      uint
	Amount      float64
	Type        string
	Status      string
	Reference   string
	Description string
}

// LedgerService owns every mutation of users.balance. Credit and Debit
// take a row lock on the user, compute balance_before/after from that
// single locked read, and append the paired Transaction line in the same
// database transaction.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Credit adds funds to the user's balance. Must run inside tx.
func (s *LedgerService) Credit(tx *gorm.DB, e Entry) (*models.Transaction, error) {
	return s.apply(tx, e, domain.DirectionCredit)
}

// Debit removes funds from the user's balance, failing with
// ErrInsufficientFunds when the balance does not cover the amount.
// Must run inside tx.
func (s *LedgerService) Debit(tx *gorm.DB, e Entry) (*models.Transaction, error) {
	return s.apply(tx, e, domain.DirectionDebit)
}

func (s *LedgerService) apply(tx *gorm.DB, e Entry, direction string) (*models.Transaction, error) {
	if e.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	var user models.User
	if err := forUpdate(tx).First(&user, e.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	before := user.Balance
	var after float64
	if direction == domain.DirectionDebit {
		if e.Amount > before {
			return nil, ErrInsufficientFunds
		}
		after = round2(before - e.Amount)
	} else {
		after = round2(before + e.Amount)
	}
	if err := tx.Model(&user).Update("balance", after).Error; err != nil {
		return nil, err
	}
	status := e.Status
	if status == "" {
		status = domain.TxStatusCompleted
	}
	trx := models.Transaction{
		UserID:        e.UserID,
		Type:          e.Type,
		Direction:     direction,
		Amount:        e.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   e.Description,
		Reference:     e.Reference,
		Status:        status,
	}
	if err := tx.Create(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

// AdjustBalance is the admin manual correction: a standalone credit or
// debit with its paired ledger line. Debits are refused beyond the
// current balance like any other debit.
func (s *LedgerService) AdjustBalance(userID uint, amount float64, adjType, description string) (*models.User, *models.Transaction, error) {
	var trx *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		switch adjType {
		case domain.AdjustTypeCredit:
			trx, err = s.Credit(tx, Entry{UserID: userID, Amount: amount, Type: domain.TxTypeAdminCredit, Description: description})
		case domain.AdjustTypeDebit:
			trx, err = s.Debit(tx, Entry{UserID: userID, Amount: amount, Type: domain.TxTypeAdminDebit, Description: description})
		default:
			err = ErrInvalidAdjustType
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, trx, err
	}
	return &user, trx, nil
}

var ErrInvalidAdjustType = errors.New("adjustment type must be credit or debit")

// forUpdate adds a row-level lock on MySQL. SQLite (used by the test
// suite) has no FOR UPDATE syntax and serializes writers anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
