package handler

import (
	"errors"
	"net/http"

	"stakevault/internal/middleware"
	"stakevault/internal/repository"
	"stakevault/internal/service"

	"github.com/gin-gonic/gin"
)

type FundingHandler struct {
	fundingSvc     *service.FundingService
	depositRepo    *repository.DepositRepository
	withdrawalRepo *repository.WithdrawalRepository
}

func NewFundingHandler(
	fundingSvc *service.FundingService,
	depositRepo *repository.DepositRepository,
	withdrawalRepo *repository.WithdrawalRepository,
) *FundingHandler {
	return &FundingHandler{
		fundingSvc:     fundingSvc,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// CreateDeposit handles POST /deposits.
func (h *FundingHandler) CreateDeposit(c *gin.Context) {
	var req struct {
		PaymentMethodID uint    `json:"payment_method_id" binding:"required"`
		Amount          float64 `json:"amount" binding:"required,gt=0"`
		TransactionData string  `json:"transaction_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dep, err := h.fundingSvc.RequestDeposit(middleware.GetUserID(c), req.PaymentMethodID, req.Amount, req.TransactionData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAmountOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create deposit"})
		}
		return
	}
	c.JSON(http.StatusCreated, dep)
}

func (h *FundingHandler) ListMyDeposits(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.depositRepo.ListByUserID(middleware.GetUserID(c), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list, "page": page, "limit": limit})
}

// CreateWithdrawal handles POST /withdrawals. The amount is debited
// immediately; an admin later approves or rejects the payout.
func (h *FundingHandler) CreateWithdrawal(c *gin.Context) {
	var req struct {
		PaymentMethodID uint    `json:"payment_method_id" binding:"required"`
		Amount          float64 `json:"amount" binding:"required,gt=0"`
		AccountDetails  string  `json:"account_details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.fundingSvc.RequestWithdrawal(middleware.GetUserID(c), req.PaymentMethodID, req.Amount, req.AccountDetails)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAmountOutOfRange), errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create withdrawal"})
		}
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *FundingHandler) ListMyWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.withdrawalRepo.ListByUserID(middleware.GetUserID(c), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list, "page": page, "limit": limit})
}
