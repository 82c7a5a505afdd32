package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/interfaces/http/response"
	"logichain.backend/internal/usecases"
	"logichain.backend/pkg/utils"
)

type ContractService interface {
	CreateContract(ctx context.Context, input *entities.CreateContractInput) (*entities.Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	GetContractByNumber(ctx context.Context, number string) (*entities.Contract, error)
	ListContracts(ctx context.Context, filters entities.ListFilters) ([]*entities.Contract, int64, error)
	KanbanContracts(ctx context.Context) ([]*entities.Contract, error)
	NextContractNumber(ctx context.Context) (string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractStatus, user string, override bool) error
	EditContract(ctx context.Context, id uuid.UUID, input *entities.ContractEditInput) error
	AddAdditive(ctx context.Context, id uuid.UUID, input usecases.AddAdditiveInput) error
	ListAdditives(ctx context.Context, id uuid.UUID) ([]*entities.ContractAdditive, error)
	ListEvents(ctx context.Context, id uuid.UUID) ([]*entities.ContractEvent, error)
}

// ContractHandler handles contract lifecycle endpoints
type ContractHandler struct {
	contractUsecase ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractUsecase ContractService) *ContractHandler {
	return &ContractHandler{contractUsecase: contractUsecase}
}

// CreateContract creates a new contract
// POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var input entities.CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	contract, err := h.contractUsecase.CreateContract(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"contract": contract})
}

// ListContracts lists contracts with optional filters and pagination
// GET /api/v1/contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	params := utils.GetPaginationParams(page, limit)

	filters := parseListFilters(c)
	filters.Limit = params.Limit
	filters.Offset = params.CalculateOffset()

	contracts, total, err := h.contractUsecase.ListContracts(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"contracts":  contracts,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Kanban lists the workflow board, finalized contracts excluded
// GET /api/v1/contracts/kanban
func (h *ContractHandler) Kanban(c *gin.Context) {
	contracts, err := h.contractUsecase.KanbanContracts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	board := map[string][]*entities.Contract{}
	for _, status := range entities.StatusFlow {
		board[string(status)] = []*entities.Contract{}
	}
	for _, contract := range contracts {
		board[string(contract.Status)] = append(board[string(contract.Status)], contract)
	}

	response.Success(c, http.StatusOK, gin.H{"board": board})
}

// NextNumber previews the next contract number
// GET /api/v1/contracts/next-number
func (h *ContractHandler) NextNumber(c *gin.Context) {
	number, err := h.contractUsecase.NextContractNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contractNumber": number})
}

// GetContract gets a contract by ID
// GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	contract, err := h.contractUsecase.GetContract(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

// GetContractByNumber gets a contract by its human-readable number
// GET /api/v1/contracts/number/:number
func (h *ContractHandler) GetContractByNumber(c *gin.Context) {
	contract, err := h.contractUsecase.GetContractByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

type updateStatusInput struct {
	Status   string `json:"status" binding:"required"`
	User     string `json:"user"`
	Override bool   `json:"override"`
}

// UpdateStatus moves a contract through the workflow
// PATCH /api/v1/contracts/:id/status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	newStatus := entities.ContractStatus(input.Status)
	if !newStatus.Valid() && !input.Override {
		response.Error(c, domainerrors.ErrInvalidStatus)
		return
	}

	if err := h.contractUsecase.UpdateStatus(c.Request.Context(), id, newStatus, input.User, input.Override); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": input.Status})
}

// EditContract applies a contractual amendment
// PATCH /api/v1/contracts/:id
func (h *ContractHandler) EditContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var input entities.ContractEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.contractUsecase.EditContract(c.Request.Context(), id, &input); err != nil {
		response.Error(c, err)
		return
	}

	contract, err := h.contractUsecase.GetContract(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

// AddAdditive appends a financial amendment
// POST /api/v1/contracts/:id/additives
func (h *ContractHandler) AddAdditive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	var input usecases.AddAdditiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.contractUsecase.AddAdditive(c.Request.Context(), id, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "additive recorded"})
}

// ListAdditives lists the financial amendments of a contract
// GET /api/v1/contracts/:id/additives
func (h *ContractHandler) ListAdditives(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	additives, err := h.contractUsecase.ListAdditives(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"additives": additives})
}

// ListEvents lists the audit trail of a contract, newest first
// GET /api/v1/contracts/:id/events
func (h *ContractHandler) ListEvents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contract ID"))
		return
	}

	events, err := h.contractUsecase.ListEvents(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func parseListFilters(c *gin.Context) entities.ListFilters {
	filters := entities.ListFilters{
		Type:           c.Query("type"),
		Status:         entities.ContractStatus(c.Query("status")),
		Department:     c.Query("department"),
		ContractedLike: c.Query("supplier"),
		OrderBy:        c.Query("order_by"),
	}

	if v := c.Query("min_value"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinValue = &f
		}
	}
	if v := c.Query("max_value"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxValue = &f
		}
	}
	if v := c.Query("created_from"); v != "" {
		if t, err := time.Parse(entities.DateLayout, v); err == nil {
			filters.DateFrom = null.TimeFrom(t)
		}
	}
	if v := c.Query("created_to"); v != "" {
		if t, err := time.Parse(entities.DateLayout, v); err == nil {
			filters.DateTo = null.TimeFrom(t)
		}
	}
	return filters
}

func parseContractIDs(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		if id, err := uuid.Parse(strings.TrimSpace(p)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
