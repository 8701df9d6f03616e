package router

import (
	"time"

	"stakevault/config"
	"stakevault/internal/handler"
	"stakevault/internal/middleware"
	"stakevault/internal/repository"
	"stakevault/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	settingRepo := repository.NewReferralSettingRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	ledgerSvc := service.NewLedgerService(db)
	commissionSvc := service.NewCommissionService(db, ledgerSvc, settingRepo, referralRepo)
	investmentSvc := service.NewInvestmentService(db, ledgerSvc, commissionSvc)
	fundingSvc := service.NewFundingService(db, ledgerSvc, commissionSvc, methodRepo)
	authSvc := service.NewAuthService(cfg, userRepo, referralRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo, investmentRepo, txRepo, referralRepo)
	planHandler := handler.NewPlanHandler(planRepo, methodRepo)
	investmentHandler := handler.NewInvestmentHandler(investmentSvc, investmentRepo)
	fundingHandler := handler.NewFundingHandler(fundingSvc, depositRepo, withdrawalRepo)
	adminHandler := handler.NewAdminHandler(adminRepo, userRepo, planRepo, methodRepo, settingRepo, depositRepo, withdrawalRepo, fundingSvc, ledgerSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		api.GET("/plans", planHandler.ListPlans)
		api.GET("/payment-methods", planHandler.ListPaymentMethods)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.GET("/dashboard", meHandler.GetDashboard)
			me.GET("/transactions", meHandler.GetTransactions)
			me.GET("/referrals", meHandler.GetReferrals)
		}

		investments := api.Group("/investments")
		investments.Use(authMw)
		{
			investments.POST("", investmentHandler.Create)
			investments.GET("", investmentHandler.List)
			investments.GET("/:id", investmentHandler.Get)
			investments.POST("/:id/claim", investmentHandler.Claim)
		}

		api.POST("/deposits", authMw, fundingHandler.CreateDeposit)
		api.GET("/deposits", authMw, fundingHandler.ListMyDeposits)
		api.POST("/withdrawals", authMw, fundingHandler.CreateWithdrawal)
		api.GET("/withdrawals", authMw, fundingHandler.ListMyWithdrawals)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)

			admin.GET("/plans", adminHandler.ListPlans)
			admin.POST("/plans", adminHandler.CreatePlan)
			admin.PUT("/plans/:id", adminHandler.UpdatePlan)
			admin.DELETE("/plans/:id", adminHandler.DeletePlan)

			admin.GET("/payment-methods", adminHandler.ListPaymentMethods)
			admin.POST("/payment-methods", adminHandler.CreatePaymentMethod)
			admin.PUT("/payment-methods/:id", adminHandler.UpdatePaymentMethod)

			admin.GET("/referral-settings", adminHandler.ListReferralSettings)
			admin.POST("/referral-settings", adminHandler.UpsertReferralSetting)
			admin.DELETE("/referral-settings/:id", adminHandler.DeleteReferralSetting)

			admin.GET("/deposits", adminHandler.ListDeposits)
			admin.PUT("/deposits/:id", adminHandler.ProcessDeposit)
			admin.GET("/withdrawals", adminHandler.ListWithdrawals)
			admin.PUT("/withdrawals/:id", adminHandler.ProcessWithdrawal)
			admin.POST("/adjust-balance", adminHandler.AdjustBalance)
		}
	}

	return r
}
