package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maida-inc/maida/internal/application/delivery/usecases"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
	"github.com/maida-inc/maida/internal/shared/utils"
)

type DeliveryHandler struct {
	listDeliveriesUC  *usecases.ListDeliveriesUseCase
	rebuildScheduleUC *usecases.RebuildScheduleUseCase
	skipDeliveryUC    *usecases.SkipDeliveryUseCase
	markDeliveredUC   *usecases.MarkDeliveredUseCase
	logger            logger.Interface
}

func NewDeliveryHandler(
	listDeliveriesUC *usecases.ListDeliveriesUseCase,
	rebuildScheduleUC *usecases.RebuildScheduleUseCase,
	skipDeliveryUC *usecases.SkipDeliveryUseCase,
	markDeliveredUC *usecases.MarkDeliveredUseCase,
) *DeliveryHandler {
	return &DeliveryHandler{
		listDeliveriesUC:  listDeliveriesUC,
		rebuildScheduleUC: rebuildScheduleUC,
		skipDeliveryUC:    skipDeliveryUC,
		markDeliveredUC:   markDeliveredUC,
		logger:            logger.NewLogger(),
	}
}

func (h *DeliveryHandler) ListDeliveries(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pendingOnly := false
	if s := c.Query("pending_only"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid pending_only parameter"))
			return
		}
		pendingOnly = v
	}

	result, err := h.listDeliveriesUC.Execute(c.Request.Context(), usecases.ListDeliveriesCommand{
		SubscriptionID: sid,
		PendingOnly:    pendingOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type RebuildScheduleRequest struct {
	Weekdays []string `json:"weekdays" binding:"omitempty,dive,daycode"`
	FromDate string   `json:"from_date"`
}

// RebuildSchedule replaces the pending part of a subscription's delivery
// calendar, optionally with a new weekday pattern.
func (h *DeliveryHandler) RebuildSchedule(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RebuildScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for schedule rebuild", "subscription_id", sid, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	fromDate, err := parseOptionalDate(req.FromDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RebuildScheduleCommand{
		SubscriptionID: sid,
		Weekdays:       req.Weekdays,
	}
	if fromDate != nil {
		cmd.FromDate = *fromDate
	}

	result, err := h.rebuildScheduleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery schedule updated successfully", result)
}

func (h *DeliveryHandler) SkipDelivery(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.skipDeliveryUC.Execute(c.Request.Context(), usecases.SkipDeliveryCommand{
		DeliveryID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery skipped successfully", result)
}

func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	sid, err := requireSID(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markDeliveredUC.Execute(c.Request.Context(), usecases.MarkDeliveredCommand{
		DeliveryID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery marked as delivered", result)
}
