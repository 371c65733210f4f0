package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
)

// inferredKeywords - подсказки для вызывающей стороны, одинаковы для всех ответов.
// Каждый ответ получает свою копию.
func inferredKeywords() []string {
	return []string{"visual", "mood", "scene"}
}

// PromptService - конвейер "отзыв -> описание сцены".
// Не хранит состояние между запросами и безопасен для конкурентного использования.
type PromptService struct {
	resolver   *Resolver
	extractor  *Extractor
	compressor *Compressor
	vocab      *prompt.Vocabulary
	budget     int
	logger     *zap.Logger
}

func NewPromptService(
	resolver *Resolver,
	extractor *Extractor,
	compressor *Compressor,
	vocab *prompt.Vocabulary,
	budget int,
	logger *zap.Logger,
) *PromptService {
	if budget <= prompt.SafetyReserve("") {
		budget = prompt.DefaultCharBudget
	}
	return &PromptService{
		resolver:   resolver,
		extractor:  extractor,
		compressor: compressor,
		vocab:      vocab,
		budget:     budget,
		logger:     logger.Named("PromptService"),
	}
}

// Generate строит описание сцены. debug добавляет в Meta значения стадий.
func (s *PromptService) Generate(ctx context.Context, req domain.PromptRequest, debug bool) (*domain.PromptResult, error) {
	genre, err := domain.ParseGenre(req.Genre)
	if err != nil {
		promptGenerationsTotal.WithLabelValues("unknown", "validation_error").Inc()
		return nil, err
	}
	log := s.logger.With(zap.String("genre", genre.String()), zap.String("title", req.Title))

	result, err := s.generate(ctx, genre, req, debug, log)
	if err != nil {
		promptGenerationsTotal.WithLabelValues(genre.String(), errorStatus(err)).Inc()
		return nil, err
	}

	status := "success"
	if result.Meta.Degraded {
		status = "degraded"
	}
	promptGenerationsTotal.WithLabelValues(genre.String(), status).Inc()
	log.Info("Scene description generated",
		zap.Bool("kb_matched", result.Meta.KBMatched),
		zap.Bool("degraded", result.Meta.Degraded),
		zap.Int("length", len([]rune(result.Description))),
	)
	return result, nil
}

func (s *PromptService) generate(ctx context.Context, genre domain.Genre, req domain.PromptRequest, debug bool, log *zap.Logger) (*domain.PromptResult, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}

	var (
		mc       domain.MergedContext
		degraded bool
	)
	switch genre {
	case domain.GenreMusical:
		if strings.TrimSpace(req.Review) == "" {
			return nil, domain.NewValidationError("review", "review text is required for musicals")
		}
		record, _ := s.resolver.ResolveMusical(ctx, req.Title)
		extraction, err := s.extractor.Extract(ctx, req.Review)
		if err != nil {
			return nil, err
		}
		degraded = extraction.Degraded
		mc = prompt.MergeMusical(record, extraction.Features, s.vocab)
	case domain.GenreBand:
		band, _ := s.resolver.ResolveBand(ctx, req.Title)
		mc = prompt.MergeBand(req.Title, band, req.Location, req.Date, s.vocab)
	default:
		return nil, domain.NewValidationError("genre", "unsupported genre: '"+genre.String()+"'")
	}

	draft, err := prompt.Compile(mc)
	if err != nil {
		return nil, err
	}
	log.Debug("Scene draft compiled", zap.Int("length", len([]rune(draft))))

	compressed, err := s.compressor.Compress(ctx, draft, req.StyleRequest, domain.ShortForm)
	if err != nil {
		return nil, err
	}

	final := prompt.FitWithSafetyClause(compressed, s.budget)

	result := &domain.PromptResult{
		Description: final,
		Meta: domain.PromptMeta{
			Genre:            genre,
			KBMatched:        mc.KBMatched,
			StyleRequest:     strings.TrimSpace(req.StyleRequest),
			ShortForm:        true,
			Degraded:         degraded,
			InferredKeywords: inferredKeywords(),
		},
	}
	if debug {
		result.Meta.Stages = &domain.SceneDescription{Draft: draft, Compressed: compressed, Final: final}
	}
	return result, nil
}

func errorStatus(err error) string {
	var tErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation_error"
	case errors.As(err, &tErr):
		return "transport_error"
	default:
		return "error"
	}
}
