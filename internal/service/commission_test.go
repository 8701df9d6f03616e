package service

import (
	"testing"
	"time"

	"stakevault/internal/domain"
	"stakevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a -> b -> c -> d where each user referred the next one.
func buildChain(t *testing.T, e *testEnv, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, n)
	for i := range users {
		users[i] = e.createUser(t, 0)
		if i > 0 {
			e.refer(t, users[i-1], users[i])
		}
	}
	return users
}

func TestDistributeThreeLevelFanOut(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 4) // a referred b referred c referred d
	a, b, c, d := chain[0], chain[1], chain[2], chain[3]
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	e.addSetting(t, domain.SystemTypeInvestment, 2, 5)
	e.addSetting(t, domain.SystemTypeInvestment, 3, 2)

	e.commission.Distribute(d.ID, 100, domain.SystemTypeInvestment)

	assert.Equal(t, 10.0, e.balance(t, c.ID))
	assert.Equal(t, 5.0, e.balance(t, b.ID))
	assert.Equal(t, 2.0, e.balance(t, a.ID))
	assert.Equal(t, 0.0, e.balance(t, d.ID), "the source user earns nothing")

	for _, tc := range []struct {
		userID uint
		amount float64
	}{{c.ID, 10}, {b.ID, 5}, {a.ID, 2}} {
		var trx models.Transaction
		require.NoError(t, e.db.Where("user_id = ? AND type = ?", tc.userID, domain.TxTypeReferralCommission).First(&trx).Error)
		assert.Equal(t, tc.amount, trx.Amount)
		assert.Equal(t, domain.DirectionCredit, trx.Direction)

		var fresh models.User
		require.NoError(t, e.db.First(&fresh, tc.userID).Error)
		assert.Equal(t, tc.amount, fresh.TotalReferralEarned)
	}

	// c's direct edge to d carries the earned total
	edge, err := e.referrals.GetEdgeByReferredUserID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, edge.CommissionEarned)
}

func TestDistributeNoSettingsIsNoOp(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 2)

	e.commission.Distribute(chain[1].ID, 100, domain.SystemTypeInvestment)

	assert.Equal(t, 0.0, e.balance(t, chain[0].ID))
	var count int64
	require.NoError(t, e.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDistributeSkipsUnconfiguredLevel(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 4)
	a, b, c, d := chain[0], chain[1], chain[2], chain[3]
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	e.addSetting(t, domain.SystemTypeInvestment, 3, 2)

	e.commission.Distribute(d.ID, 100, domain.SystemTypeInvestment)

	assert.Equal(t, 10.0, e.balance(t, c.ID))
	assert.Equal(t, 0.0, e.balance(t, b.ID), "level 2 has no setting")
	assert.Equal(t, 2.0, e.balance(t, a.ID), "the walk continues past a skipped level")
}

func TestDistributeStopsAtUplineTop(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 2) // a referred b, a has no referrer
	a, b := chain[0], chain[1]
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	e.addSetting(t, domain.SystemTypeInvestment, 2, 5)
	e.addSetting(t, domain.SystemTypeInvestment, 3, 2)

	e.commission.Distribute(b.ID, 100, domain.SystemTypeInvestment)

	assert.Equal(t, 10.0, e.balance(t, a.ID))
	var count int64
	require.NoError(t, e.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDistributeCycleGuard(t *testing.T) {
	e := newTestEnv(t)
	a := e.createUser(t, 0)
	b := e.createUser(t, 0)
	e.refer(t, a, b)
	e.refer(t, b, a) // corrupt data: mutual referral
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	e.addSetting(t, domain.SystemTypeInvestment, 2, 5)
	e.addSetting(t, domain.SystemTypeInvestment, 3, 2)

	done := make(chan struct{})
	go func() {
		e.commission.Distribute(b.ID, 100, domain.SystemTypeInvestment)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("distribution did not terminate on a referral cycle")
	}

	assert.Equal(t, 10.0, e.balance(t, a.ID), "level 1 pays before the cycle is detected")
	assert.Equal(t, 0.0, e.balance(t, b.ID))
}

func TestDistributeUsesBonusTypeForDeposits(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 2)
	a, b := chain[0], chain[1]
	e.addSetting(t, domain.SystemTypeDeposit, 1, 10)

	e.commission.Distribute(b.ID, 95, domain.SystemTypeDeposit)

	var trx models.Transaction
	require.NoError(t, e.db.Where("user_id = ?", a.ID).First(&trx).Error)
	assert.Equal(t, domain.TxTypeReferralBonus, trx.Type)
	assert.Equal(t, 9.5, trx.Amount)
}

// A broken level must not block the rest of the walk or the caller.
func TestDistributeSkipsFailedLevel(t *testing.T) {
	e := newTestEnv(t)
	chain := buildChain(t, e, 3)
	a, b, c := chain[0], chain[1], chain[2]
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	e.addSetting(t, domain.SystemTypeInvestment, 2, 5)

	// hard-delete b so the level-1 credit fails while the edge survives
	require.NoError(t, e.db.Unscoped().Delete(&models.User{}, b.ID).Error)

	e.commission.Distribute(c.ID, 100, domain.SystemTypeInvestment)

	assert.Equal(t, 5.0, e.balance(t, a.ID), "level 2 still pays after level 1 failed")
}

func TestInvestmentTriggersCommission(t *testing.T) {
	e := newTestEnv(t)
	referrer := e.createUser(t, 0)
	investor := e.createUser(t, 1000)
	e.refer(t, referrer, investor)
	e.addSetting(t, domain.SystemTypeInvestment, 1, 10)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)

	_, err := e.investments.Create(investor.ID, plan.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, 10.0, e.balance(t, referrer.ID))
	assert.Equal(t, 900.0, e.balance(t, investor.ID))
}

func TestClaimTriggersInterestCommission(t *testing.T) {
	e := newTestEnv(t)
	referrer := e.createUser(t, 0)
	investor := e.createUser(t, 1000)
	e.refer(t, referrer, investor)
	e.addSetting(t, domain.SystemTypeInterest, 1, 5)
	plan := e.addPlan(t, 100, 10000, 1.0, 30, true)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.setClock(start)

	inv, err := e.investments.Create(investor.ID, plan.ID, 1000)
	require.NoError(t, err)

	e.setClock(start.Add(24 * time.Hour))
	res, err := e.investments.Claim(investor.ID, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, res.ROIPaid)

	assert.Equal(t, 0.5, e.balance(t, referrer.ID), "5% of the daily ROI payout")
}
