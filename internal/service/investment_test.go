package service

import (
	"testing"
	"time"

	"stakevault/internal/domain"
	"stakevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvestmentValidations(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 500, 1.0, 30, true)

	_, err := e.investments.Create(u.ID, 9999, 200)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = e.investments.Create(u.ID, plan.ID, 50)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
	_, err = e.investments.Create(u.ID, plan.ID, 501)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	require.NoError(t, e.db.Model(plan).Update("is_active", false).Error)
	_, err = e.investments.Create(u.ID, plan.ID, 200)
	assert.ErrorIs(t, err, ErrPlanInactive)

	poor := e.createUser(t, 10)
	require.NoError(t, e.db.Model(plan).Update("is_active", true).Error)
	_, err = e.investments.Create(poor.ID, plan.ID, 200)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, 1000.0, e.balance(t, u.ID), "failed creates must not touch the balance")
}

func TestCreateInvestmentDebitsAndSnapshots(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.5, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 400)
	require.NoError(t, err)

	assert.Equal(t, 600.0, e.balance(t, u.ID))
	assert.Equal(t, 6.0, inv.DailyROI)
	assert.True(t, inv.NextClaimDate.Equal(start.Add(24*time.Hour)))
	assert.True(t, inv.EndDate.Equal(start.AddDate(0, 0, 30)))
	assert.True(t, inv.IsActive)

	var fresh models.User
	require.NoError(t, e.db.First(&fresh, u.ID).Error)
	assert.Equal(t, 400.0, fresh.TotalInvested)
	assert.True(t, fresh.HasActivePlan)

	var trx models.Transaction
	require.NoError(t, e.db.Where("user_id = ? AND type = ?", u.ID, domain.TxTypeInvestment).First(&trx).Error)
	assert.Equal(t, domain.DirectionDebit, trx.Direction)
	assert.Equal(t, inv.OrderID, trx.Reference)
}

func TestClaimBeforeWindowOpens(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 500)
	require.NoError(t, err)

	e.setClock(start.Add(23 * time.Hour))
	_, err = e.investments.Claim(u.ID, inv.ID)
	assert.ErrorIs(t, err, ErrNotClaimable)
	assert.Equal(t, 500.0, e.balance(t, u.ID))
}

func TestClaimAtBoundary(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 500)
	require.NoError(t, err)

	// exactly at next_claim_date the window is open
	e.setClock(start.Add(24 * time.Hour))
	res, err := e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.ROIPaid)
	assert.False(t, res.Completed)
	assert.Equal(t, 505.0, e.balance(t, u.ID))
}

// A late claim pays one day's ROI only, and the window advances +24h
// from its previous value rather than from the claim time.
func TestLateClaimPaysSingleDay(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 500)
	require.NoError(t, err)

	e.setClock(start.Add(73 * time.Hour))
	res, err := e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.ROIPaid, "three elapsed days still pay one day's ROI")

	var fresh models.UserInvestment
	require.NoError(t, e.db.First(&fresh, inv.ID).Error)
	assert.True(t, fresh.NextClaimDate.Equal(start.Add(48*time.Hour)))
	require.NotNil(t, fresh.LastClaimDate)
	assert.True(t, fresh.LastClaimDate.Equal(start.Add(73*time.Hour)))

	// next window already open: the missed day is claimable now, one at a time
	res, err = e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.ROIPaid)
	assert.Equal(t, 510.0, e.balance(t, u.ID))
}

func TestClaimOtherUsersInvestment(t *testing.T) {
	e := newTestEnv(t)
	owner := e.createUser(t, 1000)
	other := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(owner.ID, plan.ID, 500)
	require.NoError(t, err)

	e.setClock(start.Add(25 * time.Hour))
	_, err = e.investments.Claim(other.ID, inv.ID)
	assert.ErrorIs(t, err, ErrNotInvestmentOwner)

	_, err = e.investments.Claim(owner.ID, 9999)
	assert.ErrorIs(t, err, ErrInvestmentNotFound)
}

func TestClaimClampedAtTheoreticalMax(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 500)
	require.NoError(t, err)

	// max total is 150; leave only 2 claimable
	require.NoError(t, e.db.Model(inv).Update("total_roi_earned", 148).Error)

	e.setClock(start.Add(25 * time.Hour))
	res, err := e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.ROIPaid)

	var fresh models.UserInvestment
	require.NoError(t, e.db.First(&fresh, inv.ID).Error)
	assert.Equal(t, 150.0, fresh.TotalROIEarned)

	// fully earned out: nothing left to pay before expiry
	e.setClock(start.Add(49 * time.Hour))
	_, err = e.investments.Claim(u.ID, inv.ID)
	assert.ErrorIs(t, err, ErrNotClaimable)
}

// Full term: 1000 at 1% for 30 days with principal return.
func TestInvestmentFullLifecycle(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 1000)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.balance(t, u.ID))

	for day := 1; day <= 30; day++ {
		e.setClock(start.Add(time.Duration(day) * 24 * time.Hour))
		res, err := e.investments.Claim(u.ID, inv.ID)
		require.NoError(t, err, "day %d", day)
		require.Equal(t, 10.0, res.ROIPaid, "day %d", day)
	}
	assert.Equal(t, 300.0, e.balance(t, u.ID))

	// past the end date the claim completes the stake and returns capital
	e.setClock(start.Add(31 * 24 * time.Hour))
	res, err := e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 1000.0, res.PrincipalReturned)
	assert.Equal(t, 1300.0, e.balance(t, u.ID))

	var fresh models.UserInvestment
	require.NoError(t, e.db.First(&fresh, inv.ID).Error)
	assert.False(t, fresh.IsActive)
	assert.Equal(t, 300.0, fresh.TotalROIEarned)

	var freshUser models.User
	require.NoError(t, e.db.First(&freshUser, u.ID).Error)
	assert.False(t, freshUser.HasActivePlan)
	assert.Equal(t, 300.0, freshUser.TotalROIEarned)

	_, err = e.investments.Claim(u.ID, inv.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1300.0, e.balance(t, u.ID))

	assert.InDelta(t, e.balance(t, u.ID), 1000+e.sumSigned(t, u.ID), 0.001)
}

func TestCompletionWithoutPrincipalReturn(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, 500)
	plan := e.addPlan(t, 100, 10000, 2.0, 10, false)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(u.ID, plan.ID, 500)
	require.NoError(t, err)

	e.setClock(start.Add(11 * 24 * time.Hour))
	res, err := e.investments.Claim(u.ID, inv.ID)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Zero(t, res.PrincipalReturned)
	assert.Equal(t, 0.0, e.balance(t, u.ID))
}
