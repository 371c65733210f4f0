package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

// Resolver ищет запись справочника по введенному пользователем названию.
// Никогда не возвращает ошибку: сбой базы логируется и считается промахом.
type Resolver struct {
	repo   repository.WorkRepository
	logger *zap.Logger
}

func NewResolver(repo repository.WorkRepository, logger *zap.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger.Named("Resolver")}
}

type lookup struct {
	strategy string
	term     string
	find     func(ctx context.Context, term string) (*domain.WorkRecord, error)
}

// ResolveMusical пробует по очереди: точное совпадение нормализованного и исходного названия,
// вхождение нормализованного и исходного названия в название записи,
// и наконец вхождение названия записи в нормализованное название ("뮤지컬캣츠" -> "캣츠").
// При совпадении подгружает состав персонажей.
func (r *Resolver) ResolveMusical(ctx context.Context, rawTitle string) (*domain.WorkRecord, bool) {
	start := time.Now()
	defer func() { pipelineStageDuration.WithLabelValues("resolve").Observe(time.Since(start).Seconds()) }()

	normalized := prompt.NormalizeTitle(rawTitle)
	original := strings.TrimSpace(rawTitle)
	log := r.logger.With(zap.String("title", original), zap.String("normalized", normalized))

	lookups := []lookup{
		{"exact_normalized", normalized, r.repo.FindMusicalByTitle},
		{"exact_original", original, r.repo.FindMusicalByTitle},
		{"contains_normalized", normalized, firstOf(r.repo.FindMusicalsContaining)},
		{"contains_original", original, firstOf(r.repo.FindMusicalsContaining)},
		{"contained", normalized, firstOf(r.repo.FindMusicalsContainedIn)},
	}

	for _, l := range lookups {
		if l.term == "" || (l.term == normalized && strings.HasSuffix(l.strategy, "_original")) {
			continue
		}
		rec, err := l.find(ctx, l.term)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				log.Warn("Knowledge base lookup failed, treating as no match", zap.String("strategy", l.strategy), zap.Error(err))
			}
			continue
		}
		kbLookupsTotal.WithLabelValues(string(domain.GenreMusical), l.strategy).Inc()
		log.Debug("Musical resolved", zap.String("strategy", l.strategy), zap.Int64("id", rec.ID), zap.String("matched_title", rec.Title))
		return r.withRoster(ctx, rec, log), true
	}

	kbLookupsTotal.WithLabelValues(string(domain.GenreMusical), "miss").Inc()
	log.Debug("Musical not found in knowledge base")
	return nil, false
}

// ResolveBand ищет группу по имени без учета регистра.
func (r *Resolver) ResolveBand(ctx context.Context, name string) (*domain.BandRecord, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		kbLookupsTotal.WithLabelValues(string(domain.GenreBand), "miss").Inc()
		return nil, false
	}
	band, err := r.repo.FindBandByName(ctx, name)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Band lookup failed, treating as no match", zap.String("band", name), zap.Error(err))
		}
		kbLookupsTotal.WithLabelValues(string(domain.GenreBand), "miss").Inc()
		return nil, false
	}
	kbLookupsTotal.WithLabelValues(string(domain.GenreBand), "exact").Inc()
	return band, true
}

// withRoster при ошибке загрузки состава оставляет запись без персонажей.
func (r *Resolver) withRoster(ctx context.Context, rec *domain.WorkRecord, log *zap.Logger) *domain.WorkRecord {
	full, err := r.repo.FindMusicalWithRoster(ctx, rec.ID)
	if err != nil {
		log.Warn("Failed to load roster, using record without characters", zap.Int64("id", rec.ID), zap.Error(err))
		return rec
	}
	return full
}

func firstOf(find func(ctx context.Context, term string) ([]domain.WorkRecord, error)) func(context.Context, string) (*domain.WorkRecord, error) {
	return func(ctx context.Context, term string) (*domain.WorkRecord, error) {
		recs, err := find(ctx, term)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, models.ErrNotFound
		}
		return &recs[0], nil
	}
}
