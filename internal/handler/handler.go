package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

// PromptGenerator строит описание сцены по запросу.
type PromptGenerator interface {
	Generate(ctx context.Context, req domain.PromptRequest, debug bool) (*domain.PromptResult, error)
}

// ReviewOrganizer структурирует отзыв.
type ReviewOrganizer interface {
	Organize(ctx context.Context, req domain.OrganizeRequest) (*domain.OrganizedReview, error)
}

// ReviewSummarizer сокращает и правит текст отзыва.
type ReviewSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Polish(ctx context.Context, text string) (string, error)
}

// Handler - HTTP API сервиса.
type Handler struct {
	prompts    PromptGenerator
	organizer  ReviewOrganizer
	summarizer ReviewSummarizer
	tasks      repository.TaskResultStore
	publisher  messaging.Publisher
	logger     *zap.Logger
}

func NewHandler(
	prompts PromptGenerator,
	organizer ReviewOrganizer,
	summarizer ReviewSummarizer,
	tasks repository.TaskResultStore,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		prompts:    prompts,
		organizer:  organizer,
		summarizer: summarizer,
		tasks:      tasks,
		publisher:  publisher,
		logger:     logger.Named("HTTPHandler"),
	}
}

// RegisterRoutes регистрирует маршруты. llm навешивается на эндпоинты, вызывающие модель.
func (h *Handler) RegisterRoutes(router *gin.Engine, llm ...gin.HandlerFunc) {
	router.GET("/health", h.health)

	chain := func(final gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, llm...), final)
	}

	api := router.Group("/api/v1")
	{
		api.POST("/prompts", chain(h.generatePrompt)...)

		reviews := api.Group("/reviews")
		reviews.POST("/organize", chain(h.organizeReview)...)
		reviews.POST("/summarize", chain(h.summarizeReview)...)
		reviews.POST("/polish", chain(h.polishReview)...)

		images := api.Group("/images")
		images.POST("/prompt", h.buildImagePrompt)
		images.POST("", chain(h.createImageTask)...)
		images.GET("/:taskId", h.getImageTask)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
