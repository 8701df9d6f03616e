package handler

import (
	"errors"
	"net/http"
	"strconv"

	"stakevault/internal/models"
	"stakevault/internal/repository"
	"stakevault/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo      *repository.AdminRepository
	userRepo       *repository.UserRepository
	planRepo       *repository.PlanRepository
	methodRepo     *repository.PaymentMethodRepository
	settingRepo    *repository.ReferralSettingRepository
	depositRepo    *repository.DepositRepository
	withdrawalRepo *repository.WithdrawalRepository
	fundingSvc     *service.FundingService
	ledgerSvc      *service.LedgerService
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
	planRepo *repository.PlanRepository,
	methodRepo *repository.PaymentMethodRepository,
	settingRepo *repository.ReferralSettingRepository,
	depositRepo *repository.DepositRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	fundingSvc *service.FundingService,
	ledgerSvc *service.LedgerService,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:      adminRepo,
		userRepo:       userRepo,
		planRepo:       planRepo,
		methodRepo:     methodRepo,
		settingRepo:    settingRepo,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		fundingSvc:     fundingSvc,
		ledgerSvc:      ledgerSvc,
	}
}

// Dashboard handles GET /admin/dashboard — overview stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.adminRepo.ListUsers(c.Query("search"), c.Query("role"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser handles PATCH /admin/users/:id — soft states only, users
// are never hard-deleted.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"is_active": true, "is_banned": true, "username": true, "email": true}
	safe := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			safe[k] = v
		}
	}
	if len(safe) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}
	if err := h.userRepo.UpdateFields(uint(id), safe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	u, _ := h.userRepo.GetByID(uint(id))
	c.JSON(http.StatusOK, u)
}

// --- plans ---

func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var plan models.InvestmentPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if plan.Name == "" || plan.MinAmount <= 0 || plan.MaxAmount < plan.MinAmount || plan.DurationDays <= 0 || plan.DailyROIPercentage <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan parameters"})
		return
	}
	if err := h.planRepo.Create(&plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan edits a plan template. Live investments snapshot their
// daily ROI at creation, so this never changes existing stakes.
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	plan, err := h.planRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	var req models.InvestmentPlan
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan.Name = req.Name
	plan.MinAmount = req.MinAmount
	plan.MaxAmount = req.MaxAmount
	plan.DailyROIPercentage = req.DailyROIPercentage
	plan.DurationDays = req.DurationDays
	plan.ReturnPrincipal = req.ReturnPrincipal
	plan.IsActive = req.IsActive
	if err := h.planRepo.Update(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *AdminHandler) DeletePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.planRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// --- payment methods ---

func (h *AdminHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.methodRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payment methods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

func (h *AdminHandler) CreatePaymentMethod(c *gin.Context) {
	var m models.PaymentMethod
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.methodRepo.Create(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment method"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) UpdatePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var m models.PaymentMethod
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = uint(id)
	if err := h.methodRepo.Update(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment method"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// --- referral settings ---

func (h *AdminHandler) ListReferralSettings(c *gin.Context) {
	settings, err := h.settingRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list referral settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referral_settings": settings})
}

func (h *AdminHandler) UpsertReferralSetting(c *gin.Context) {
	var s models.ReferralSetting
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.SystemType == "" || s.LevelNumber < 1 || s.CommissionPercentage < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid setting parameters"})
		return
	}
	if err := h.settingRepo.Upsert(&s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save referral setting"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) DeleteReferralSetting(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.settingRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete referral setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "referral setting deleted"})
}

// --- deposit / withdrawal queues ---

func (h *AdminHandler) ListDeposits(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.depositRepo.List(c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list deposits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ProcessDeposit handles PUT /admin/deposits/:id — pending -> approved|rejected.
func (h *AdminHandler) ProcessDeposit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status     string `json:"status" binding:"required"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dep, err := h.fundingSvc.ProcessDeposit(uint(id), req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyProcessed), errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process deposit"})
		}
		return
	}
	c.JSON(http.StatusOK, dep)
}

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.withdrawalRepo.List(c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ProcessWithdrawal handles PUT /admin/withdrawals/:id.
func (h *AdminHandler) ProcessWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status     string `json:"status" binding:"required"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.fundingSvc.ProcessWithdrawal(uint(id), req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWithdrawalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyProcessed), errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process withdrawal"})
		}
		return
	}
	c.JSON(http.StatusOK, w)
}

// AdjustBalance handles POST /admin/adjust-balance — manual credit or
// debit with its paired ledger line.
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	var req struct {
		UserID      uint    `json:"user_id" binding:"required"`
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		Type        string  `json:"type" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	desc := req.Description
	if desc == "" {
		desc = "Admin balance adjustment"
	}
	user, trx, err := h.ledgerSvc.AdjustBalance(req.UserID, req.Amount, req.Type, desc)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientFunds),
			errors.Is(err, service.ErrInvalidAdjustType),
			errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "adjustment failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "transaction": trx})
}
