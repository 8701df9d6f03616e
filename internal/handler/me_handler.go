package handler

import (
	"net/http"

	"stakevault/internal/middleware"
	"stakevault/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo       *repository.UserRepository
	investmentRepo *repository.InvestmentRepository
	txRepo         *repository.TransactionRepository
	referralRepo   *repository.ReferralRepository
}

func NewMeHandler(
	userRepo *repository.UserRepository,
	investmentRepo *repository.InvestmentRepository,
	txRepo *repository.TransactionRepository,
	referralRepo *repository.ReferralRepository,
) *MeHandler {
	return &MeHandler{
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		txRepo:         txRepo,
		referralRepo:   referralRepo,
	}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetDashboard returns the account summary: balance, counters, and
// active investments.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	investments, err := h.investmentRepo.ListByUserID(userID, 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	referralCount, _ := h.referralRepo.CountByReferrerID(userID)
	c.JSON(http.StatusOK, gin.H{
		"balance":               u.Balance,
		"total_invested":        u.TotalInvested,
		"total_roi_earned":      u.TotalROIEarned,
		"total_referral_earned": u.TotalReferralEarned,
		"has_active_plan":       u.HasActivePlan,
		"referral_code":         u.ReferralCode,
		"referral_count":        referralCount,
		"investments":           investments,
	})
}

func (h *MeHandler) GetTransactions(c *gin.Context) {
	page, limit := parsePagination(c)
	txType := c.Query("type")
	list, total, err := h.txRepo.ListByUserID(middleware.GetUserID(c), txType, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

func (h *MeHandler) GetReferrals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	list, err := h.referralRepo.ListByReferrerID(userID, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"referral_code":         u.ReferralCode,
		"total_referral_earned": u.TotalReferralEarned,
		"referrals":             list,
	})
}
