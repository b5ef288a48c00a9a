package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/shared/utils"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
