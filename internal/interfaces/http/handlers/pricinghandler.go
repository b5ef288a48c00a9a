package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maida-inc/maida/internal/application/pricing/usecases"
	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/shared/logger"
	"github.com/maida-inc/maida/internal/shared/utils"
)

type PricingHandler struct {
	quotePriceUC *usecases.QuotePriceUseCase
	planLister   pricing.PlanLister
	logger       logger.Interface
}

func NewPricingHandler(
	quotePriceUC *usecases.QuotePriceUseCase,
	planLister pricing.PlanLister,
) *PricingHandler {
	return &PricingHandler{
		quotePriceUC: quotePriceUC,
		planLister:   planLister,
		logger:       logger.NewLogger(),
	}
}

type QuotePriceRequest struct {
	PlanID    string   `json:"plan_id" binding:"required"`
	MainMeals int      `json:"main_meals" binding:"required,min=1,max=4"`
	Breakfast bool     `json:"breakfast"`
	Snacks    int      `json:"snacks" binding:"min=0,max=2"`
	Duration  string   `json:"duration" binding:"required"`
	Dates     []string `json:"dates"`
	Weekdays  []string `json:"weekdays" binding:"omitempty,dive,daycode"`
	PromoCode string   `json:"promo_code"`
}

// QuotePrice prices a selection without creating anything.
func (h *PricingHandler) QuotePrice(c *gin.Context) {
	var req QuotePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for price quote", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.QuotePriceCommand{
		PlanID:    req.PlanID,
		MainMeals: req.MainMeals,
		Breakfast: req.Breakfast,
		Snacks:    req.Snacks,
		Duration:  req.Duration,
		Dates:     dates,
		Weekdays:  req.Weekdays,
		PromoCode: req.PromoCode,
	}

	breakdown, err := h.quotePriceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", breakdown)
}

type planResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// ListPlans returns the purchasable plans for the storefront.
func (h *PricingHandler) ListPlans(c *gin.Context) {
	plans, err := h.planLister.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list plans", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, planResponse{ID: p.ID, Name: p.Name, Multiplier: p.Multiplier})
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
