package service

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
)

// ImageCreator - часть клиента go-openai, которая нужна сервису.
type ImageCreator interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// ImageConfig - параметры модели изображений.
type ImageConfig struct {
	Model     string
	Size      string
	Quality   string
	MaxPrompt int
}

// ImageService отправляет готовое описание в модель генерации изображений.
type ImageService struct {
	creator ImageCreator
	cfg     ImageConfig
	logger  *zap.Logger
}

func NewImageService(creator ImageCreator, cfg ImageConfig, logger *zap.Logger) *ImageService {
	if cfg.Model == "" {
		cfg.Model = openai.CreateImageModelDallE3
	}
	if cfg.Size == "" {
		cfg.Size = openai.CreateImageSize1024x1024
	}
	if cfg.Quality == "" {
		cfg.Quality = openai.CreateImageQualityStandard
	}
	if cfg.MaxPrompt <= 0 {
		cfg.MaxPrompt = prompt.DefaultCharBudget
	}
	return &ImageService{creator: creator, cfg: cfg, logger: logger.Named("ImageService")}
}

// Generate возвращает URL изображения. Описание длиннее лимита обрезается.
func (s *ImageService) Generate(ctx context.Context, description string) (*domain.ImageResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("prompt", "prompt is required")
	}
	description = prompt.TruncateRunes(description, s.cfg.MaxPrompt)

	resp, err := s.creator.CreateImage(ctx, openai.ImageRequest{
		Prompt:         description,
		Model:          s.cfg.Model,
		N:              1,
		Size:           s.cfg.Size,
		Quality:        s.cfg.Quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		imageGenerationsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Image generation failed", zap.Error(err))
		return nil, domain.NewTransportError("generate image", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		imageGenerationsTotal.WithLabelValues("empty").Inc()
		return nil, domain.NewTransportError("generate image", fmt.Errorf("empty image response"))
	}

	imageGenerationsTotal.WithLabelValues("success").Inc()
	return &domain.ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
		Prompt:        description,
	}, nil
}
