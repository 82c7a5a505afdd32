package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/interfaces/http/response"
)

type DocumentService interface {
	Generate(ctx context.Context, id uuid.UUID) (string, error)
	Download(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

// DocumentHandler handles contract document endpoints
type DocumentHandler struct {
	documentUsecase DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase DocumentService) *DocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// Generate renders the contract PDF for the current version
// POST /api/v1/contracts/:id/document
func (h *DocumentHandler) Generate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	path, err := h.documentUsecase.Generate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"pdfPath": path})
}

// Download serves the current contract document
// GET /api/v1/contracts/:id/document
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	data, name, err := h.documentUsecase.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
