package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/interfaces/http/response"
	"logichain.backend/internal/usecases"
)

type KPIService interface {
	Calculate(ctx context.Context, expiringDays int, contractIDs []uuid.UUID) (*usecases.KPIReport, error)
}

// KPIHandler handles the dashboard endpoint
type KPIHandler struct {
	kpiUsecase KPIService
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(kpiUsecase KPIService) *KPIHandler {
	return &KPIHandler{kpiUsecase: kpiUsecase}
}

// GetKPIs computes the dashboard report
// GET /api/v1/kpis?expiring_days=30&contract_ids=<id>,<id>
func (h *KPIHandler) GetKPIs(c *gin.Context) {
	expiringDays := usecases.DefaultExpiringDays
	if v := c.Query("expiring_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			response.Error(c, domainerrors.BadRequest("expiring_days must be a positive integer"))
			return
		}
		expiringDays = days
	}

	var ids []uuid.UUID
	if raw := c.Query("contract_ids"); raw != "" {
		ids = parseContractIDs(raw)
	}

	report, err := h.kpiUsecase.Calculate(c.Request.Context(), expiringDays, ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
