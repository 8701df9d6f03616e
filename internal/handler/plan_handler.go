package handler

import (
	"net/http"

	"stakevault/internal/repository"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planRepo   *repository.PlanRepository
	methodRepo *repository.PaymentMethodRepository
}

func NewPlanHandler(planRepo *repository.PlanRepository, methodRepo *repository.PaymentMethodRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo, methodRepo: methodRepo}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PlanHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.methodRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment methods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}
