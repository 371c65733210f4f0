package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
)

// generatePrompt - POST /api/v1/prompts. ?debug=true добавляет значения стадий.
func (h *Handler) generatePrompt(c *gin.Context) {
	var req domain.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	res, err := h.prompts.Generate(c.Request.Context(), req, c.Query("debug") == "true")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// buildImagePrompt - POST /api/v1/images/prompt. Модель не вызывается.
func (h *Handler) buildImagePrompt(c *gin.Context) {
	var req imagePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if strings.TrimSpace(req.BasePrompt) == "" {
		h.handleServiceError(c, domain.NewValidationError("basePrompt", "basePrompt is required"))
		return
	}
	c.JSON(http.StatusOK, imagePromptResponse{Prompt: prompt.BuildImagePrompt(req.BasePrompt, req.ImageRequest)})
}
