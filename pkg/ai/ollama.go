package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

type ollamaProvider struct {
	client *api.Client
	model  string
	logger *zap.Logger
}

func newOllamaProvider(cfg Config, logger *zap.Logger) (*ollamaProvider, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/v1")
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", baseURL, err)
	}

	return &ollamaProvider{
		client: api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:  cfg.Model,
		logger: logger.Named("OllamaProvider"),
	}, nil
}

func (p *ollamaProvider) Model() string { return p.model }

func (p *ollamaProvider) GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usage := UsageInfo{}
	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(p.model, "error").Inc()
		return "", usage, ErrEmptyPrompt
	}

	messages := []api.Message{{Role: "system", Content: systemPrompt}}
	if userInput != "" {
		messages = append(messages, api.Message{Role: "user", Content: userInput})
	}

	options := map[string]interface{}{}
	if params.Temperature != nil {
		options["temperature"] = *params.Temperature
	}
	if params.TopP != nil {
		options["top_p"] = *params.TopP
	}
	if params.MaxTokens != nil {
		options["num_predict"] = *params.MaxTokens
	}

	stream := false
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}

	startTime := time.Now()
	var resp api.ChatResponse
	err := p.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	duration := time.Since(startTime)
	aiRequestDuration.WithLabelValues(p.model).Observe(duration.Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.logger.Warn("Ollama request timed out", zap.Duration("duration", duration))
		}
		aiRequestsTotal.WithLabelValues(p.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(resp.Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(p.model, "error_empty_response").Inc()
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues(p.model, "success").Inc()
	usage.PromptTokens = resp.PromptEvalCount
	usage.CompletionTokens = resp.EvalCount
	usage.TotalTokens = resp.PromptEvalCount + resp.EvalCount
	observeUsage(p.model, usage)

	p.logger.Debug("Ollama response received",
		zap.Duration("duration", duration),
		zap.Int("response_length", len(resp.Message.Content)),
	)
	return resp.Message.Content, usage, nil
}
