package handlers

import (
	"context"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"logichain.backend/internal/domain/entities"
	"logichain.backend/internal/interfaces/http/response"
)

type ExportService interface {
	ExportContracts(ctx context.Context, filters entities.ListFilters) (string, error)
}

// ExportHandler handles spreadsheet export endpoints
type ExportHandler struct {
	exportUsecase ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportUsecase ExportService) *ExportHandler {
	return &ExportHandler{exportUsecase: exportUsecase}
}

// ExportContracts writes the filtered portfolio to xlsx and serves it
// GET /api/v1/contracts/export
func (h *ExportHandler) ExportContracts(c *gin.Context) {
	path, err := h.exportUsecase.ExportContracts(c.Request.Context(), parseListFilters(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
