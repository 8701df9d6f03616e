package service

import (
	"fmt"
	"testing"
	"time"

	"stakevault/config"
	"stakevault/internal/database"
	"stakevault/internal/domain"
	"stakevault/internal/models"
	"stakevault/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	ledger      *LedgerService
	commission  *CommissionService
	investments *InvestmentService
	funding     *FundingService
	auth        *AuthService
	users       *repository.UserRepository
	referrals   *repository.ReferralRepository
	settings    *repository.ReferralSettingRepository
	methods     *repository.PaymentMethodRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	referrals := repository.NewReferralRepository(db)
	settings := repository.NewReferralSettingRepository(db)
	methods := repository.NewPaymentMethodRepository(db)

	cfg := &config.Config{JWT: config.JWTConfig{
		AccessSecret:  "test-access",
		RefreshSecret: "test-refresh",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "stakevault",
	}}

	ledger := NewLedgerService(db)
	commission := NewCommissionService(db, ledger, settings, referrals)
	return &testEnv{
		db:          db,
		ledger:      ledger,
		commission:  commission,
		investments: NewInvestmentService(db, ledger, commission),
		funding:     NewFundingService(db, ledger, commission, methods),
		auth:        NewAuthService(cfg, users, referrals),
		users:       users,
		referrals:   referrals,
		settings:    settings,
		methods:     methods,
	}
}

var userSeq int

func (e *testEnv) createUser(t *testing.T, balance float64) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		Email:        fmt.Sprintf("user%d@test.local", userSeq),
		PasswordHash: "x",
		Role:         domain.RoleUser,
		Balance:      balance,
		ReferralCode: fmt.Sprintf("CODE%04d", userSeq),
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

// refer records referrer -> referred as a direct edge.
func (e *testEnv) refer(t *testing.T, referrer, referred *models.User) {
	t.Helper()
	require.NoError(t, e.referrals.CreateEdge(&models.UserReferral{
		ReferrerID:     referrer.ID,
		ReferredUserID: referred.ID,
		LevelNumber:    1,
	}))
	require.NoError(t, e.db.Model(referred).Update("referred_by", referrer.ReferralCode).Error)
}

func (e *testEnv) addSetting(t *testing.T, systemType string, level int, pct float64) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.ReferralSetting{
		SystemType:           systemType,
		LevelNumber:          level,
		CommissionPercentage: pct,
		IsActive:             true,
	}).Error)
}

func (e *testEnv) addPlan(t *testing.T, min, max, pct float64, days int, returnPrincipal bool) *models.InvestmentPlan {
	t.Helper()
	plan := &models.InvestmentPlan{
		Name:               fmt.Sprintf("Plan %s", t.Name()),
		MinAmount:          min,
		MaxAmount:          max,
		DailyROIPercentage: pct,
		DurationDays:       days,
		ReturnPrincipal:    returnPrincipal,
		IsActive:           true,
	}
	require.NoError(t, e.db.Create(plan).Error)
	return plan
}

func (e *testEnv) addMethod(t *testing.T, feePct, min float64) *models.PaymentMethod {
	t.Helper()
	m := &models.PaymentMethod{Name: "Test Method", Kind: "crypto", FeePercentage: feePct, MinAmount: min, IsActive: true}
	require.NoError(t, e.db.Create(m).Error)
	return m
}

func (e *testEnv) balance(t *testing.T, userID uint) float64 {
	t.Helper()
	var u models.User
	require.NoError(t, e.db.First(&u, userID).Error)
	return u.Balance
}

// sumSigned replays the transaction log into a balance delta.
func (e *testEnv) sumSigned(t *testing.T, userID uint) float64 {
	t.Helper()
	var list []models.Transaction
	require.NoError(t, e.db.Where("user_id = ?", userID).Find(&list).Error)
	var total float64
	for i := range list {
		total += list[i].Signed()
	}
	return total
}

func (e *testEnv) setClock(at time.Time) {
	e.investments.now = func() time.Time { return at }
	e.funding.now = func() time.Time { return at }
}
