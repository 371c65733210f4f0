package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
)

// Organizer структурирует отзыв без ограничения длины и собирает связный корейский текст.
type Organizer struct {
	resolver  *Resolver
	extractor *Extractor
	logger    *zap.Logger
}

func NewOrganizer(resolver *Resolver, extractor *Extractor, logger *zap.Logger) *Organizer {
	return &Organizer{resolver: resolver, extractor: extractor, logger: logger.Named("Organizer")}
}

// kbContext - то, что удалось взять из справочника.
type kbContext struct {
	summary    string
	background string
	characters []string
}

// Organize требует только текст отзыва. Неизвестный жанр допустим: справочник тогда не используется.
func (o *Organizer) Organize(ctx context.Context, req domain.OrganizeRequest) (*domain.OrganizedReview, error) {
	review := strings.TrimSpace(req.Review)
	if review == "" {
		return nil, domain.NewValidationError("review", "review text is required")
	}

	extraction, err := o.extractor.Extract(ctx, review)
	if err != nil {
		return nil, err
	}
	ext := extraction.Features

	title := strings.TrimSpace(req.Title)
	var kb kbContext
	if genre, err := domain.ParseGenre(req.Genre); err == nil && title != "" {
		switch genre {
		case domain.GenreMusical:
			kb = o.musicalContext(ctx, title, ext)
		case domain.GenreBand:
			kb = o.bandContext(ctx, title, ext)
		}
	}

	meta := buildStructuredMeta(req, ext, kb)
	o.logger.Debug("Review organized",
		zap.String("genre", meta.Genre),
		zap.Int("characters", len(meta.Characters)),
		zap.Bool("degraded", extraction.Degraded),
	)
	return &domain.OrganizedReview{
		Structured:  meta,
		Narrative:   BuildNarrative(meta),
		RawAnalysis: ext,
		Degraded:    extraction.Degraded,
		DBSummary:   kb.summary,
	}, nil
}

func (o *Organizer) musicalContext(ctx context.Context, title string, ext domain.ExtractedFeatures) kbContext {
	rec, ok := o.resolver.ResolveMusical(ctx, title)
	if !ok {
		return kbContext{}
	}
	kb := kbContext{
		summary:    firstNonBlank(rec.Summary, ext.Theme),
		background: firstNonBlank(rec.Background, ext.Setting),
	}
	for _, c := range rec.Characters {
		if info := prompt.DescribeCharacter(c); info != "" {
			kb.characters = append(kb.characters, info)
		}
		if len(kb.characters) >= domain.MaxRosterEntries {
			break
		}
	}
	return kb
}

func (o *Organizer) bandContext(ctx context.Context, title string, ext domain.ExtractedFeatures) kbContext {
	band, ok := o.resolver.ResolveBand(ctx, title)
	if !ok {
		return kbContext{}
	}
	return kbContext{
		summary:    joinNonBlank(", ", band.NameMeaning, band.PosterColor, band.Symbol),
		background: ext.Setting,
	}
}

func buildStructuredMeta(req domain.OrganizeRequest, ext domain.ExtractedFeatures, kb kbContext) domain.StructuredMeta {
	meta := domain.StructuredMeta{
		Genre:        strings.TrimSpace(req.Genre),
		Title:        strings.TrimSpace(req.Title),
		Date:         strings.TrimSpace(req.Date),
		Location:     strings.TrimSpace(req.Location),
		Theme:        ext.Theme,
		Emotion:      ext.Emotion,
		Relationship: ext.Relationship,
		Setting:      firstNonBlank(kb.background, ext.Setting),
		Lighting:     ext.Lighting,
		Actions:      ext.Actions,
		DBSummary:    kb.summary,
		Characters:   []string{},
	}

	if len(kb.characters) > 0 {
		meta.Characters = append(meta.Characters, kb.characters...)
	} else {
		for _, slot := range ext.Characters {
			if c := prompt.CleanCharacterDescription(slot); c != "" {
				meta.Characters = append(meta.Characters, c)
			}
		}
	}

	meta.Highlights = labeled([]pair{
		{"주제: ", meta.Theme},
		{"주요 감정: ", meta.Emotion},
		{"관계: ", meta.Relationship},
		{"무대/행동: ", meta.Actions},
		{"조명/분위기: ", meta.Lighting},
	})
	return meta
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinNonBlank(sep string, values ...string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
