package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/shared/utils"
)

// Config - настройки подключения к PostgreSQL.
type Config struct {
	Host        string        `env:"DB_HOST" env-default:"localhost"`
	Port        int           `env:"DB_PORT" env-default:"5432"`
	User        string        `env:"DB_USER" env-default:"postgres"`
	Password    string        `env:"DB_PASSWORD"`
	DBName      string        `env:"DB_NAME" env-default:"record"`
	SSLMode     string        `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns    int32         `env:"DB_MAX_CONNS" env-default:"10"`
	MinConns    int32         `env:"DB_MIN_CONNS" env-default:"1"`
	IdleTimeout time.Duration `env:"DB_IDLE_TIMEOUT" env-default:"5m"`
}

// DSN собирает строку подключения.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// MaskedDSN - DSN для логов.
func (c Config) MaskedDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, utils.MaskSecret(c.Password), c.Host, c.Port, c.DBName, c.SSLMode)
}

// Connect создает пул и проверяет соединение, повторяя попытки с паузой delay.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger, attempts int, delay time.Duration) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе строки подключения: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = cfg.IdleTimeout

	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		pool, err := open(ctx, poolConfig)
		if err == nil {
			logger.Info("Успешное подключение к базе данных PostgreSQL", zap.String("dsn", cfg.MaskedDSN()))
			return pool, nil
		}
		lastErr = err
		logger.Warn("Не удалось подключиться к базе данных",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("не удалось подключиться к базе данных после %d попыток: %w", attempts, lastErr)
}

func open(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул подключений: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
