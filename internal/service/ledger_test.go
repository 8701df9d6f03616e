package service

import (
	"testing"

	"stakevault/internal/domain"
	"stakevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreditWritesPairedTransaction(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 50)

	var trx *models.Transaction
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		trx, err = e.ledger.Credit(tx, Entry{
			UserID:      u.ID,
			Amount:      100,
			Type:        domain.TxTypeDeposit,
			Description: "test credit",
		})
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, e.balance(t, u.ID))
	assert.Equal(t, domain.DirectionCredit, trx.Direction)
	assert.Equal(t, 50.0, trx.BalanceBefore)
	assert.Equal(t, 150.0, trx.BalanceAfter)
	assert.Equal(t, domain.TxStatusCompleted, trx.Status)
}

func TestDebitInsufficientFunds(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 30)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		_, err := e.ledger.Debit(tx, Entry{UserID: u.ID, Amount: 30.01, Type: domain.TxTypeWithdrawal})
		return err
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, 30.0, e.balance(t, u.ID))
	var count int64
	require.NoError(t, e.db.Model(&models.Transaction{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count, "a refused debit must leave no ledger line")
}

func TestDebitExactBalanceSucceeds(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 30)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		_, err := e.ledger.Debit(tx, Entry{UserID: u.ID, Amount: 30, Type: domain.TxTypeWithdrawal})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.balance(t, u.ID))
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 100)

	for _, amount := range []float64{0, -5} {
		err := e.db.Transaction(func(tx *gorm.DB) error {
			_, err := e.ledger.Credit(tx, Entry{UserID: u.ID, Amount: amount, Type: domain.TxTypeDeposit})
			return err
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, 100.0, e.balance(t, u.ID))
}

func TestLedgerUnknownUser(t *testing.T) {
	e := newTestEnv(t)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		_, err := e.ledger.Credit(tx, Entry{UserID: 9999, Amount: 10, Type: domain.TxTypeDeposit})
		return err
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// The transaction log must replay to the live balance.
func TestLedgerAuditTrail(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 0)

	ops := []struct {
		credit bool
		amount float64
	}{
		{true, 200}, {false, 75.50}, {true, 10.25}, {false, 100}, {true, 3.33},
	}
	for _, op := range ops {
		err := e.db.Transaction(func(tx *gorm.DB) error {
			entry := Entry{UserID: u.ID, Amount: op.amount, Type: domain.TxTypeDeposit}
			var err error
			if op.credit {
				_, err = e.ledger.Credit(tx, entry)
			} else {
				_, err = e.ledger.Debit(tx, entry)
			}
			return err
		})
		require.NoError(t, err)
	}

	assert.InDelta(t, e.balance(t, u.ID), e.sumSigned(t, u.ID), 0.001)
	assert.InDelta(t, 38.08, e.balance(t, u.ID), 0.001)
}

func TestAdjustBalance(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 100)

	user, trx, err := e.ledger.AdjustBalance(u.ID, 40, domain.AdjustTypeCredit, "manual correction")
	require.NoError(t, err)
	assert.Equal(t, 140.0, user.Balance)
	assert.Equal(t, domain.TxTypeAdminCredit, trx.Type)

	user, trx, err = e.ledger.AdjustBalance(u.ID, 90, domain.AdjustTypeDebit, "manual correction")
	require.NoError(t, err)
	assert.Equal(t, 50.0, user.Balance)
	assert.Equal(t, domain.TxTypeAdminDebit, trx.Type)

	_, _, err = e.ledger.AdjustBalance(u.ID, 10, "transfer", "bad type")
	assert.ErrorIs(t, err, ErrInvalidAdjustType)

	_, _, err = e.ledger.AdjustBalance(u.ID, 1000, domain.AdjustTypeDebit, "too much")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 50.0, e.balance(t, u.ID))
}
