package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Validation errors carry the full list of
// problems; domain sentinels map to their HTTP status.
func Error(c *gin.Context, err error) {
	var verrs entities.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "validation failed",
			"errors":  []string(verrs),
		})
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"message": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
	case errors.Is(err, domainerrors.ErrNoDocument):
		c.JSON(http.StatusNotFound, gin.H{"message": "no document generated for this contract"})
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "resource already exists"})
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid status transition"})
	case errors.Is(err, domainerrors.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "unknown contract status"})
	case errors.Is(err, domainerrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
