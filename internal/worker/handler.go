package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
)

// PromptGenerator строит описание сцены по запросу.
type PromptGenerator interface {
	Generate(ctx context.Context, req domain.PromptRequest, debug bool) (*domain.PromptResult, error)
}

// ImageGenerator превращает описание в изображение.
type ImageGenerator interface {
	Generate(ctx context.Context, description string) (*domain.ImageResult, error)
}

var _ messaging.DeliveryHandler = (*Handler)(nil)

// Handler обрабатывает задачи из очереди image_generation_tasks.
type Handler struct {
	prompts   PromptGenerator
	images    ImageGenerator
	results   repository.TaskResultStore
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewHandler(
	prompts PromptGenerator,
	images ImageGenerator,
	results repository.TaskResultStore,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		prompts:   prompts,
		images:    images,
		results:   results,
		publisher: publisher,
		logger:    logger.Named("WorkerHandler"),
	}
}

// Handle возвращает решение для брокера. Ошибки валидации подтверждаются
// с failed-результатом, ошибки модели возвращаются в очередь один раз.
func (h *Handler) Handle(ctx context.Context, body []byte, redelivered bool) messaging.Decision {
	var task messaging.ImageTaskPayload
	if err := json.Unmarshal(body, &task); err != nil || task.TaskID == "" {
		h.logger.Error("Invalid task payload", zap.Error(err), zap.ByteString("body", body))
		tasksProcessed.WithLabelValues("error_unmarshal").Inc()
		return messaging.Discard
	}

	log := h.logger.With(zap.String("task_id", task.TaskID), zap.Bool("redelivered", redelivered))
	log.Info("Received image generation task")

	start := time.Now()
	result, err := h.process(ctx, task)
	taskDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !redelivered {
			log.Warn("Task failed, requeueing", zap.Error(err))
			tasksProcessed.WithLabelValues("requeued").Inc()
			return messaging.Requeue
		}
		log.Error("Task failed", zap.Error(err))
		tasksProcessed.WithLabelValues("failed").Inc()
		result.Status = domain.ImageTaskFailed
		result.Error = err.Error()
	} else {
		tasksProcessed.WithLabelValues("success").Inc()
		result.Status = domain.ImageTaskDone
	}

	h.finish(ctx, log, result)
	return messaging.Ack
}

func (h *Handler) process(ctx context.Context, task messaging.ImageTaskPayload) (domain.ImageTaskResult, error) {
	result := domain.ImageTaskResult{TaskID: task.TaskID}

	description, meta, err := h.describe(ctx, task)
	if err != nil {
		return result, err
	}
	result.Description = description
	result.Meta = meta

	image, err := h.images.Generate(ctx, description)
	if err != nil {
		return result, err
	}
	result.ImageURL = image.URL
	return result, nil
}

func (h *Handler) describe(ctx context.Context, task messaging.ImageTaskPayload) (string, *domain.PromptMeta, error) {
	if strings.TrimSpace(task.BasePrompt) != "" {
		description := prompt.BuildImagePrompt(task.BasePrompt, task.Request.StyleRequest)
		return description, &domain.PromptMeta{StyleRequest: task.Request.StyleRequest}, nil
	}
	res, err := h.prompts.Generate(ctx, task.Request, false)
	if err != nil {
		return "", nil, err
	}
	return res.Description, &res.Meta, nil
}

// finish сохраняет результат и публикует его. Сбои только логируются, задача все равно подтверждается.
func (h *Handler) finish(ctx context.Context, log *zap.Logger, result domain.ImageTaskResult) {
	if err := h.results.Save(ctx, result); err != nil {
		log.Error("Failed to store task result", zap.Error(err))
		publishResultErrors.Inc()
	}

	payload := messaging.ImageResultPayload{
		TaskID:      result.TaskID,
		Success:     result.Status == domain.ImageTaskDone,
		Description: result.Description,
		ImageURL:    result.ImageURL,
		Error:       result.Error,
		Meta:        result.Meta,
	}
	if err := h.publisher.Publish(ctx, payload, result.TaskID); err != nil {
		log.Error("Failed to publish task result", zap.Error(err))
		publishResultErrors.Inc()
		return
	}
	log.Info("Task result published", zap.String("status", string(result.Status)))
}
