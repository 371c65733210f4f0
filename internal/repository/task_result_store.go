package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

const (
	imageTaskKeyPrefix = "image_task:"
	// DefaultTaskResultTTL - сколько хранится результат задачи генерации.
	DefaultTaskResultTTL = 24 * time.Hour
)

// TaskResultStore - состояние асинхронных задач генерации изображений.
type TaskResultStore interface {
	Save(ctx context.Context, result domain.ImageTaskResult) error
	// Get возвращает models.ErrNotFound для неизвестной или истекшей задачи.
	Get(ctx context.Context, taskID string) (*domain.ImageTaskResult, error)
}

var _ TaskResultStore = (*redisTaskResultStore)(nil)

type redisTaskResultStore struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisTaskResultStore(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) TaskResultStore {
	if ttl <= 0 {
		ttl = DefaultTaskResultTTL
	}
	return &redisTaskResultStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("TaskResultStore"),
	}
}

func (s *redisTaskResultStore) Save(ctx context.Context, result domain.ImageTaskResult) error {
	if result.TaskID == "" {
		return errors.New("task id is empty")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task result: %w", err)
	}
	if err := s.client.Set(ctx, imageTaskKeyPrefix+result.TaskID, data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save task result", zap.String("task_id", result.TaskID), zap.Error(err))
		return fmt.Errorf("failed to save task result %s: %w", result.TaskID, err)
	}
	return nil
}

func (s *redisTaskResultStore) Get(ctx context.Context, taskID string) (*domain.ImageTaskResult, error) {
	data, err := s.client.Get(ctx, imageTaskKeyPrefix+taskID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task result %s: %w", taskID, err)
	}
	var result domain.ImageTaskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task result %s: %w", taskID, err)
	}
	return &result, nil
}
