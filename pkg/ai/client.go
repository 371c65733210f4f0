package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Типы клиентов AI
const (
	ClientTypeOpenAI = "openai"
	ClientTypeOllama = "ollama"
)

const maxRetryDelay = 10 * time.Second

var (
	// ErrGenerationFailed - ошибка обращения к модели (таймаут, неуспешный статус, пустой ответ).
	ErrGenerationFailed = errors.New("ошибка генерации текста AI")
	// ErrEmptyPrompt - системный промпт пуст. Не ретраится.
	ErrEmptyPrompt = errors.New("системный промпт пуст")
)

// Config содержит настройки клиента AI.
type Config struct {
	ClientType     string
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	MaxAttempts    int
	BaseRetryDelay time.Duration
	Temperature    float64
	MaxTokens      int
}

// GenerationParams - параметры одного запроса к модели.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

// UsageInfo - расход токенов на запрос.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client - внешний сервис генерации текста: complete(system, user) -> text.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider - конкретная реализация доступа к модели (OpenAI, Ollama).
type Provider interface {
	GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error)
	Model() string
}

// RetryingClient оборачивает Provider таймаутом на попытку и экспоненциальным backoff.
type RetryingClient struct {
	provider Provider
	cfg      Config
	logger   *zap.Logger
	// sleep подменяется в тестах
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Client = (*RetryingClient)(nil)

// NewClient создает клиента по cfg.ClientType.
func NewClient(cfg Config, logger *zap.Logger) (*RetryingClient, error) {
	var provider Provider
	switch strings.ToLower(cfg.ClientType) {
	case ClientTypeOpenAI, "":
		if cfg.APIKey == "" {
			return nil, errors.New("не указан API ключ для OpenAI")
		}
		openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			openaiConfig.BaseURL = cfg.BaseURL
		}
		openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		provider = newOpenAIProvider(openaigo.NewClientWithConfig(openaiConfig), cfg.Model, logger)
	case ClientTypeOllama:
		p, err := newOllamaProvider(cfg, logger)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.ClientType)
	}

	logger.Info("AI client created",
		zap.String("type", cfg.ClientType),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)
	return NewRetryingClient(provider, cfg, logger), nil
}

// NewRetryingClient оборачивает произвольный Provider.
func NewRetryingClient(provider Provider, cfg Config, logger *zap.Logger) *RetryingClient {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &RetryingClient{
		provider: provider,
		cfg:      cfg,
		logger:   logger.Named("AIClient"),
		sleep:    sleepCtx,
	}
}

// Complete выполняет запрос с ретраями. Ошибка после исчерпания попыток оборачивает ErrGenerationFailed.
func (c *RetryingClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := GenerationParams{}
	if c.cfg.Temperature > 0 {
		params.Temperature = &c.cfg.Temperature
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = &c.cfg.MaxTokens
	}

	var lastErr error
	attempt := 0
	for attempt < c.cfg.MaxAttempts {
		attempt++

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		text, usage, err := c.provider.GenerateText(attemptCtx, systemPrompt, userPrompt, params)
		cancel()
		if err == nil {
			c.logger.Debug("AI completion received",
				zap.Int("attempt", attempt),
				zap.Int("prompt_tokens", usage.PromptTokens),
				zap.Int("completion_tokens", usage.CompletionTokens),
			)
			return text, nil
		}
		lastErr = err

		if errors.Is(err, ErrEmptyPrompt) || ctx.Err() != nil {
			break
		}
		if attempt >= c.cfg.MaxAttempts {
			break
		}

		delay := c.backoff(attempt)
		aiRetriesTotal.WithLabelValues(c.provider.Model()).Inc()
		c.logger.Warn("AI request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.cfg.MaxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := c.sleep(ctx, delay); err != nil {
			break
		}
	}

	c.logger.Error("AI request failed", zap.Int("attempts", attempt), zap.Error(lastErr))
	if errors.Is(lastErr, ErrGenerationFailed) {
		return "", fmt.Errorf("after %d attempt(s): %w", attempt, lastErr)
	}
	return "", fmt.Errorf("%w: after %d attempt(s): %w", ErrGenerationFailed, attempt, lastErr)
}

// backoff: base * 2^(attempt-1), но не больше maxRetryDelay.
func (c *RetryingClient) backoff(attempt int) time.Duration {
	base := c.cfg.BaseRetryDelay
	if base <= 0 {
		return 0
	}
	delay := base << (attempt - 1)
	if delay <= 0 || delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 0
	}
	return float32(*f64)
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// imageTimeout - генерация изображения заметно дольше текстового запроса.
const imageTimeout = 2 * time.Minute

// NewImageClient создает клиента OpenAI для Images API с тем же ключом и BaseURL.
func NewImageClient(cfg Config) (*openaigo.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для OpenAI Images")
	}
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" && strings.ToLower(cfg.ClientType) != ClientTypeOllama {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout < imageTimeout {
		timeout = imageTimeout
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: timeout}
	return openaigo.NewClientWithConfig(openaiConfig), nil
}
