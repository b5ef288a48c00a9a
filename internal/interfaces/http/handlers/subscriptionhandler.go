package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	deliverydto "github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/application/subscription/usecases"
	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
	"github.com/maida-inc/maida/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC *usecases.CreateSubscriptionUseCase
	getSubscriptionUC    *usecases.GetSubscriptionUseCase
	listSubscriptionsUC  *usecases.ListSubscriptionsUseCase
	pauseSubscriptionUC  *usecases.PauseSubscriptionUseCase
	resumeSubscriptionUC *usecases.ResumeSubscriptionUseCase
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	listSubscriptionsUC *usecases.ListSubscriptionsUseCase,
	pauseSubscriptionUC *usecases.PauseSubscriptionUseCase,
	resumeSubscriptionUC *usecases.ResumeSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC: createSubscriptionUC,
		getSubscriptionUC:    getSubscriptionUC,
		listSubscriptionsUC:  listSubscriptionsUC,
		pauseSubscriptionUC:  pauseSubscriptionUC,
		resumeSubscriptionUC: resumeSubscriptionUC,
		cancelSubscriptionUC: cancelSubscriptionUC,
		logger:               logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	CustomerID uint     `json:"customer_id" binding:"required"`
	PlanID     string   `json:"plan_id" binding:"required"`
	MainMeals  int      `json:"main_meals" binding:"required,min=1,max=4"`
	Breakfast  bool     `json:"breakfast"`
	Snacks     int      `json:"snacks" binding:"min=0,max=2"`
	Duration   string   `json:"duration" binding:"required"`
	Dates      []string `json:"dates"`
	Weekdays   []string `json:"weekdays" binding:"omitempty,dive,daycode"`
	StartDate  string   `json:"start_date"`
	Window     string   `json:"window" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	PromoCode  string   `json:"promo_code"`
}

type createSubscriptionResponse struct {
	Subscription *dto.SubscriptionDTO       `json:"subscription"`
	Pricing      *pricing.PriceBreakdown    `json:"pricing"`
	Deliveries   []*deliverydto.DeliveryDTO `json:"deliveries"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		CustomerID: req.CustomerID,
		PlanID:     req.PlanID,
		MainMeals:  req.MainMeals,
		Breakfast:  req.Breakfast,
		Snacks:     req.Snacks,
		Duration:   req.Duration,
		Dates:      dates,
		Weekdays:   req.Weekdays,
		Window:     req.Window,
		Address:    req.Address,
		PromoCode:  req.PromoCode,
	}
	if startDate != nil {
		cmd.StartDate = *startDate
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, createSubscriptionResponse{
		Subscription: result.Subscription,
		Pricing:      result.Breakdown,
		Deliveries:   result.Deliveries,
	}, "Subscription created successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), usecases.GetSubscriptionCommand{
		SubscriptionID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	customerIDStr := c.Query("customer_id")
	if customerIDStr == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("customer_id is required"))
		return
	}

	customerID, err := strconv.ParseUint(customerIDStr, 10, 32)
	if err != nil || customerID == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid customer_id"))
		return
	}

	result, err := h.listSubscriptionsUC.Execute(c.Request.Context(), usecases.ListSubscriptionsCommand{
		CustomerID: uint(customerID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type PauseSubscriptionRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

func (h *SubscriptionHandler) PauseSubscription(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PauseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for pause subscription", "subscription_id", sid, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.pauseSubscriptionUC.Execute(c.Request.Context(), usecases.PauseSubscriptionCommand{
		SubscriptionID: sid,
		Days:           req.Days,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription paused successfully", result)
}

type ResumeSubscriptionRequest struct {
	ResumeDate string `json:"resume_date"`
}

func (h *SubscriptionHandler) ResumeSubscription(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// An empty body is a valid resume request: the date defaults to the
	// next shifted delivery.
	var req ResumeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		h.logger.Warnw("invalid request body for resume subscription", "subscription_id", sid, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resumeDate, err := parseOptionalDate(req.ResumeDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resumeSubscriptionUC.Execute(c.Request.Context(), usecases.ResumeSubscriptionCommand{
		SubscriptionID: sid,
		ResumeDate:     resumeDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription resumed successfully", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SubscriptionID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription canceled successfully", result)
}
