package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stakevault/internal/middleware"
	"stakevault/internal/repository"
	"stakevault/internal/service"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	investmentSvc  *service.InvestmentService
	investmentRepo *repository.InvestmentRepository
}

func NewInvestmentHandler(investmentSvc *service.InvestmentService, investmentRepo *repository.InvestmentRepository) *InvestmentHandler {
	return &InvestmentHandler{investmentSvc: investmentSvc, investmentRepo: investmentRepo}
}

// Create handles POST /investments.
func (h *InvestmentHandler) Create(c *gin.Context) {
	var req struct {
		PlanID uint    `json:"plan_id" binding:"required"`
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := h.investmentSvc.Create(middleware.GetUserID(c), req.PlanID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPlanInactive),
			errors.Is(err, service.ErrAmountOutOfRange),
			errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create investment"})
		}
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.investmentRepo.ListByUserID(middleware.GetUserID(c), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": list, "page": page, "limit": limit})
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	inv, err := h.investmentRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "investment not found"})
		return
	}
	if inv.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// Claim handles POST /investments/:id/claim — one endpoint for both the
// daily ROI payout and the expiry completion.
func (h *InvestmentHandler) Claim(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.investmentSvc.Claim(middleware.GetUserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvestmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotInvestmentOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotClaimable), errors.Is(err, service.ErrAlreadyCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claim failed"})
		}
		return
	}
	var msg string
	switch {
	case res.Completed && res.PrincipalReturned > 0:
		msg = fmt.Sprintf("Investment completed, principal of %.2f returned", res.PrincipalReturned)
	case res.Completed:
		msg = "Investment completed"
	default:
		msg = fmt.Sprintf("Claimed daily ROI of %.2f", res.ROIPaid)
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "result": res})
}
