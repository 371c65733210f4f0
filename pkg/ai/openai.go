package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// chatCompleter - часть *openaigo.Client, которая нужна провайдеру.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openaigo.ChatCompletionRequest) (openaigo.ChatCompletionResponse, error)
}

type openAIProvider struct {
	client chatCompleter
	model  string
	logger *zap.Logger
}

func newOpenAIProvider(client chatCompleter, model string, logger *zap.Logger) *openAIProvider {
	return &openAIProvider{
		client: client,
		model:  model,
		logger: logger.Named("OpenAIProvider"),
	}
}

func (p *openAIProvider) Model() string { return p.model }

func (p *openAIProvider) GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usage := UsageInfo{}
	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(p.model, "error").Inc()
		return "", usage, ErrEmptyPrompt
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userInput,
		})
	}

	startTime := time.Now()
	p.logger.Debug("Sending request to OpenAI",
		zap.String("model", p.model),
		zap.Int("system_prompt_bytes", len(systemPrompt)),
		zap.Int("user_input_bytes", len(userInput)),
	)

	resp, err := p.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: float32Val(params.Temperature),
		MaxTokens:   intVal(params.MaxTokens),
		TopP:        float32Val(params.TopP),
	})
	duration := time.Since(startTime)
	aiRequestDuration.WithLabelValues(p.model).Observe(duration.Seconds())

	if err != nil {
		aiRequestsTotal.WithLabelValues(p.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(p.model, "error_empty_response").Inc()
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues(p.model, "success").Inc()
	text := resp.Choices[0].Message.Content

	if resp.Usage.TotalTokens > 0 {
		usage.PromptTokens = resp.Usage.PromptTokens
		usage.CompletionTokens = resp.Usage.CompletionTokens
		usage.TotalTokens = resp.Usage.TotalTokens
	} else {
		// Совместимые API (прокси, локальные сервера) иногда не присылают usage
		usage.PromptTokens = EstimateTokens(p.model, systemPrompt, userInput)
		usage.CompletionTokens = EstimateTokens(p.model, text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	observeUsage(p.model, usage)

	p.logger.Debug("OpenAI response received",
		zap.Duration("duration", duration),
		zap.Int("response_length", len(text)),
		zap.Int("total_tokens", usage.TotalTokens),
	)
	return text, usage, nil
}
