package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/interfaces/http/response"
	"logichain.backend/pkg/redis"
)

type AssistantService interface {
	Ask(ctx context.Context, sessionID, question, mode string) (string, error)
	History(ctx context.Context, sessionID string) ([]*redis.Message, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

// AssistantHandler handles the portfolio assistant endpoints
type AssistantHandler struct {
	assistantUsecase AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantUsecase AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantUsecase: assistantUsecase}
}

type askInput struct {
	Question  string `json:"question" binding:"required"`
	Mode      string `json:"mode"`
	SessionID string `json:"sessionId"`
}

// Ask answers a portfolio question
// POST /api/v1/assistant/ask
func (h *AssistantHandler) Ask(c *gin.Context) {
	var input askInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	answer, err := h.assistantUsecase.Ask(c.Request.Context(), input.SessionID, input.Question, input.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// History returns the conversation of a session, oldest first
// GET /api/v1/assistant/history/:sessionId
func (h *AssistantHandler) History(c *gin.Context) {
	messages, err := h.assistantUsecase.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if messages == nil {
		messages = []*redis.Message{}
	}

	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// ClearHistory drops the conversation of a session
// DELETE /api/v1/assistant/history/:sessionId
func (h *AssistantHandler) ClearHistory(c *gin.Context) {
	if err := h.assistantUsecase.ClearHistory(c.Request.Context(), c.Param("sessionId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "conversation cleared"})
}
