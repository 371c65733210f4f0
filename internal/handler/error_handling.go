package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var (
		statusCode   int
		errResp      models.ErrorResponse
		validation   *domain.ValidationError
		transportErr *domain.TransportError
	)

	switch {
	case errors.As(err, &validation):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.CodeValidation, Message: validation.Error(), Field: validation.Field}
	case errors.As(err, &transportErr), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Upstream failure", zap.Error(err), zap.String("path", c.FullPath()))
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.CodeUpstream, Message: "Upstream model is unavailable, try again later", Retryable: true}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.CodeNotFound, Message: "Resource not found"}
	default:
		h.logger.Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.CodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
		Code:    models.CodeValidation,
		Message: "Invalid request data: " + err.Error(),
	})
}
