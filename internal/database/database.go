package database

import (
	"errors"

	"stakevault/config"
	"stakevault/internal/domain"
	"stakevault/internal/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InvestmentPlan{},
		&models.UserInvestment{},
		&models.Transaction{},
		&models.PaymentMethod{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.UserReferral{},
		&models.ReferralSetting{},
	)
}

// SeedAdmin creates the initial admin account if none exists.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) {
	var admin models.User
	err := db.Where("role = ?", domain.RoleAdmin).First(&admin).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Warn("admin seed lookup failed")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Warn("admin seed hash failed")
		return
	}
	admin = models.User{
		Username:     "admin",
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		ReferralCode: "ADMIN000",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.WithError(err).Warn("admin seed failed")
		return
	}
	log.WithField("email", cfg.Email).Info("seeded admin account")
}

// SeedDefaults inserts starter plans, payment methods and referral
// settings when the corresponding tables are empty.
func SeedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&models.InvestmentPlan{}).Count(&count)
	if count == 0 {
		plans := []models.InvestmentPlan{
			{Name: "Starter", MinAmount: 50, MaxAmount: 999, DailyROIPercentage: 1.0, DurationDays: 30, ReturnPrincipal: true, IsActive: true},
			{Name: "Growth", MinAmount: 1000, MaxAmount: 9999, DailyROIPercentage: 1.5, DurationDays: 45, ReturnPrincipal: true, IsActive: true},
			{Name: "Whale", MinAmount: 10000, MaxAmount: 100000, DailyROIPercentage: 2.0, DurationDays: 60, ReturnPrincipal: false, IsActive: true},
		}
		if err := db.Create(&plans).Error; err != nil {
			log.WithError(err).Warn("plan seed failed")
		}
	}

	db.Model(&models.PaymentMethod{}).Count(&count)
	if count == 0 {
		methods := []models.PaymentMethod{
			{Name: "USDT (TRC20)", Kind: "crypto", FeePercentage: 0, MinAmount: 10, IsActive: true},
			{Name: "Bitcoin", Kind: "crypto", FeePercentage: 1, MinAmount: 25, IsActive: true},
			{Name: "Bank Transfer", Kind: "bank", FeePercentage: 5, MinAmount: 50, IsActive: true},
		}
		if err := db.Create(&methods).Error; err != nil {
			log.WithError(err).Warn("payment method seed failed")
		}
	}

	db.Model(&models.ReferralSetting{}).Count(&count)
	if count == 0 {
		settings := []models.ReferralSetting{
			{SystemType: domain.SystemTypeInvestment, LevelNumber: 1, CommissionPercentage: 10, IsActive: true},
			{SystemType: domain.SystemTypeInvestment, LevelNumber: 2, CommissionPercentage: 5, IsActive: true},
			{SystemType: domain.SystemTypeInvestment, LevelNumber: 3, CommissionPercentage: 2, IsActive: true},
			{SystemType: domain.SystemTypeInterest, LevelNumber: 1, CommissionPercentage: 5, IsActive: true},
			{SystemType: domain.SystemTypeInterest, LevelNumber: 2, CommissionPercentage: 2, IsActive: true},
			{SystemType: domain.SystemTypeInterest, LevelNumber: 3, CommissionPercentage: 1, IsActive: true},
			{SystemType: domain.SystemTypeDeposit, LevelNumber: 1, CommissionPercentage: 10, IsActive: true},
		}
		if err := db.Create(&settings).Error; err != nil {
			log.WithError(err).Warn("referral setting seed failed")
		}
	}
}
