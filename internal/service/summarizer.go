package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
)

const (
	summarizeSystemPrompt = "You translate and summarize Korean text into natural English suitable for image prompt usage."
	summarizeUserPrompt   = `Summarize the following Korean performance review into **3 to 5 full sentences in natural English**.
Requirements:
- Focus on core scenes, atmosphere, emotions, and spatial/mood elements.
- No bullet points or lists.
- No meta comments about the summary.
- Make it suitable as a base prompt for an image-generation model.
- Do NOT mention text, captions, or logos.

Review:
%s`

	polishSystemPrompt = "You rewrite Korean text naturally while keeping the user's tone."
	polishUserPrompt   = `아래 공연 후기를 '말투와 분위기를 최대한 유지'하면서 자연스럽게 정돈된 한 문단으로 정리해줘.
- 핵심만 정리하되 내용은 크게 축약하지 말 것
- 말투, 감정선, 표현 분위기를 유지
- 너무 딱딱하지 않고 사용자 후기 느낌을 살릴 것
- 불필요한 반복/오타/비문만 자연스럽게 고치기

후기:
%s`
)

// Summarizer - вспомогательные текстовые операции над отзывом.
type Summarizer struct {
	client ai.Client
	logger *zap.Logger
}

func NewSummarizer(client ai.Client, logger *zap.Logger) *Summarizer {
	return &Summarizer{client: client, logger: logger.Named("Summarizer")}
}

// Summarize пересказывает корейский отзыв 3-5 английскими предложениями.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, "summarize review", summarizeSystemPrompt, summarizeUserPrompt, text)
}

// Polish приводит отзыв в аккуратный абзац, сохраняя интонацию автора.
func (s *Summarizer) Polish(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, "polish review", polishSystemPrompt, polishUserPrompt, text)
}

func (s *Summarizer) complete(ctx context.Context, op, system, userTemplate, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewValidationError("text", "text is required")
	}
	out, err := s.client.Complete(ctx, system, fmt.Sprintf(userTemplate, text))
	if err != nil {
		return "", domain.NewTransportError(op, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", domain.NewTransportError(op, fmt.Errorf("%w: empty completion", ai.ErrGenerationFailed))
	}
	s.logger.Debug("Text operation completed", zap.String("op", op), zap.Int("length", len([]rune(out))))
	return out, nil
}
