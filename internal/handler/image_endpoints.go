package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
)

// createImageTask - POST /api/v1/images. Ставит задачу в очередь и сразу отвечает 202.
func (h *Handler) createImageTask(c *gin.Context) {
	var req imageTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if err := validateImageTask(req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	taskID := uuid.NewString()
	log := h.logger.With(zap.String("task_id", taskID))

	if err := h.tasks.Save(ctx, domain.ImageTaskResult{TaskID: taskID, Status: domain.ImageTaskPending}); err != nil {
		imageTasksEnqueued.WithLabelValues("error_store").Inc()
		h.handleServiceError(c, err)
		return
	}

	task := messaging.ImageTaskPayload{TaskID: taskID, Request: req.PromptRequest, BasePrompt: req.BasePrompt}
	if err := h.publisher.Publish(ctx, task, taskID); err != nil {
		imageTasksEnqueued.WithLabelValues("error_publish").Inc()
		h.handleServiceError(c, domain.NewTransportError("enqueue image task", err))
		return
	}

	imageTasksEnqueued.WithLabelValues("accepted").Inc()
	log.Info("Image task enqueued", zap.Bool("base_prompt", req.BasePrompt != ""))
	c.JSON(http.StatusAccepted, imageTaskResponse{TaskID: taskID})
}

// getImageTask - GET /api/v1/images/:taskId.
func (h *Handler) getImageTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if _, err := uuid.Parse(taskID); err != nil {
		h.handleServiceError(c, domain.NewValidationError("taskId", "task id must be a UUID"))
		return
	}

	res, err := h.tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// validateImageTask проверяет то, что можно проверить до постановки в очередь.
func validateImageTask(req imageTaskRequest) error {
	if strings.TrimSpace(req.BasePrompt) != "" {
		return nil
	}
	if strings.TrimSpace(req.Title) == "" {
		return domain.NewValidationError("title", "title is required")
	}
	genre, err := domain.ParseGenre(req.Genre)
	if err != nil {
		return err
	}
	if genre == domain.GenreMusical && strings.TrimSpace(req.Review) == "" {
		return domain.NewValidationError("review", "review text is required for musicals")
	}
	return nil
}
