package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/interfaces/http/response"
)

type ActivityService interface {
	UpdateActivity(ctx context.Context, id uuid.UUID, input *entities.ActivityUpdateInput) error
	UpsertCompliance(ctx context.Context, id uuid.UUID, check *entities.ComplianceCheck) error
	UpsertSupplierPerformance(ctx context.Context, id uuid.UUID, perf *entities.SupplierPerformance) error
}

// ActivityHandler handles operational data capture endpoints
type ActivityHandler struct {
	activityUsecase ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityUsecase ActivityService) *ActivityHandler {
	return &ActivityHandler{activityUsecase: activityUsecase}
}

// UpdateActivity captures operational data without bumping the version
// PATCH /api/v1/contracts/:id/activity
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var input entities.ActivityUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.activityUsecase.UpdateActivity(c.Request.Context(), id, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "activity updated"})
}

// UpsertCompliance stores the compliance snapshot of a contract
// PUT /api/v1/contracts/:id/compliance
func (h *ActivityHandler) UpsertCompliance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var check entities.ComplianceCheck
	if err := c.ShouldBindJSON(&check); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.activityUsecase.UpsertCompliance(c.Request.Context(), id, &check); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "compliance updated"})
}

// UpsertSupplierPerformance stores the supplier metrics of a contract
// PUT /api/v1/contracts/:id/supplier-performance
func (h *ActivityHandler) UpsertSupplierPerformance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var perf entities.SupplierPerformance
	if err := c.ShouldBindJSON(&perf); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.activityUsecase.UpsertSupplierPerformance(c.Request.Context(), id, &perf); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "supplier performance updated"})
}
