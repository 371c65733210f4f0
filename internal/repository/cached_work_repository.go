package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

const (
	DefaultKBCacheTTL = 10 * time.Minute

	musicalTitleKeyPrefix  = "kb:musical:title:"
	musicalRosterKeyPrefix = "kb:musical:roster:"
	bandKeyPrefix          = "kb:band:"
)

var _ WorkRepository = (*CachedWorkRepository)(nil)

// CachedWorkRepository кэширует в Redis найденные записи справочника.
// Промахи и выборки по подстроке не кэшируются. Ошибки Redis не мешают чтению из базы.
type CachedWorkRepository struct {
	next   WorkRepository
	cache  redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedWorkRepository(next WorkRepository, cache redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedWorkRepository {
	if ttl <= 0 {
		ttl = DefaultKBCacheTTL
	}
	return &CachedWorkRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("CachedWorkRepo"),
	}
}

func (r *CachedWorkRepository) FindMusicalByTitle(ctx context.Context, title string) (*domain.WorkRecord, error) {
	return cached(ctx, r, "musical", musicalTitleKeyPrefix+title, func() (*domain.WorkRecord, error) {
		return r.next.FindMusicalByTitle(ctx, title)
	})
}

func (r *CachedWorkRepository) FindMusicalsContaining(ctx context.Context, fragment string) ([]domain.WorkRecord, error) {
	return r.next.FindMusicalsContaining(ctx, fragment)
}

func (r *CachedWorkRepository) FindMusicalsContainedIn(ctx context.Context, text string) ([]domain.WorkRecord, error) {
	return r.next.FindMusicalsContainedIn(ctx, text)
}

func (r *CachedWorkRepository) FindMusicalWithRoster(ctx context.Context, id int64) (*domain.WorkRecord, error) {
	return cached(ctx, r, "roster", fmt.Sprintf("%s%d", musicalRosterKeyPrefix, id), func() (*domain.WorkRecord, error) {
		return r.next.FindMusicalWithRoster(ctx, id)
	})
}

func (r *CachedWorkRepository) FindBandByName(ctx context.Context, name string) (*domain.BandRecord, error) {
	return cached(ctx, r, "band", bandKeyPrefix+strings.ToLower(name), func() (*domain.BandRecord, error) {
		return r.next.FindBandByName(ctx, name)
	})
}

func cached[T any](ctx context.Context, r *CachedWorkRepository, kind, key string, load func() (*T, error)) (*T, error) {
	log := r.logger.With(zap.String("key", key))

	data, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			kbCacheRequestsTotal.WithLabelValues(kind, "hit").Inc()
			return &v, nil
		}
		log.Warn("Corrupted cache entry, reloading")
	case errors.Is(err, redis.Nil):
		kbCacheRequestsTotal.WithLabelValues(kind, "miss").Inc()
	default:
		kbCacheRequestsTotal.WithLabelValues(kind, "error").Inc()
		log.Warn("Redis get failed, falling back to database", zap.Error(err))
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err != nil {
		log.Warn("Failed to marshal cache entry", zap.Error(err))
	} else if err := r.cache.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Warn("Redis set failed", zap.Error(err))
	}
	return v, nil
}
