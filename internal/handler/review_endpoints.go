package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

func (h *Handler) organizeReview(c *gin.Context) {
	var req domain.OrganizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	res, err := h.organizer.Organize(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) summarizeReview(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}

func (h *Handler) polishReview(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	text, err := h.summarizer.Polish(c.Request.Context(), req.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, textResponse{Text: text})
}
