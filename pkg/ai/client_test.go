package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	responses []string
	errs      []error
	calls     int
	lastParam GenerationParams
	deadlines []bool
}

func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error) {
	idx := f.calls
	f.calls++
	f.lastParam = params
	_, hasDeadline := ctx.Deadline()
	f.deadlines = append(f.deadlines, hasDeadline)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", UsageInfo{}, f.errs[idx]
	}
	if idx < len(f.responses) {
		return f.responses[idx], UsageInfo{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2}, nil
	}
	return "", UsageInfo{}, fmt.Errorf("%w: no more responses", ErrGenerationFailed)
}

func newTestClient(p Provider, cfg Config) (*RetryingClient, *[]time.Duration) {
	c := NewRetryingClient(p, cfg, zap.NewNop())
	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return c, &delays
}

func TestRetryingClient_SucceedsAfterTransientErrors(t *testing.T) {
	transient := fmt.Errorf("%w: 503", ErrGenerationFailed)
	p := &fakeProvider{
		errs:      []error{transient, transient, nil},
		responses: []string{"", "", "ok"},
	}
	c, delays := newTestClient(p, Config{MaxAttempts: 3, BaseRetryDelay: 100 * time.Millisecond, Timeout: time.Second, Temperature: 0.7, MaxTokens: 200})

	text, err := c.Complete(context.Background(), "system", "user")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, p.calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *delays)
	require.NotNil(t, p.lastParam.Temperature)
	assert.InDelta(t, 0.7, *p.lastParam.Temperature, 1e-9)
	require.NotNil(t, p.lastParam.MaxTokens)
	assert.Equal(t, 200, *p.lastParam.MaxTokens)
	assert.Equal(t, []bool{true, true, true}, p.deadlines)
}

func TestRetryingClient_ExhaustsAttempts(t *testing.T) {
	p := &fakeProvider{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	c, _ := newTestClient(p, Config{MaxAttempts: 2, BaseRetryDelay: time.Millisecond})

	_, err := c.Complete(context.Background(), "system", "user")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 2, p.calls)
}

func TestRetryingClient_DoesNotRetryEmptyPrompt(t *testing.T) {
	p := &fakeProvider{errs: []error{ErrEmptyPrompt}}
	c, delays := newTestClient(p, Config{MaxAttempts: 3})

	_, err := c.Complete(context.Background(), "", "user")

	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, p.calls)
	assert.Empty(t, *delays)
}

func TestRetryingClient_StopsOnCancelledContext(t *testing.T) {
	p := &fakeProvider{errs: []error{context.Canceled, context.Canceled}}
	c, _ := newTestClient(p, Config{MaxAttempts: 5, BaseRetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Complete(ctx, "system", "user")

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, p.calls)
}

func TestRetryingClient_Backoff(t *testing.T) {
	c := NewRetryingClient(&fakeProvider{}, Config{BaseRetryDelay: time.Second}, zap.NewNop())
	assert.Equal(t, time.Second, c.backoff(1))
	assert.Equal(t, 2*time.Second, c.backoff(2))
	assert.Equal(t, 8*time.Second, c.backoff(4))
	assert.Equal(t, maxRetryDelay, c.backoff(5))
	assert.Equal(t, maxRetryDelay, c.backoff(60))

	noDelay := NewRetryingClient(&fakeProvider{}, Config{}, zap.NewNop())
	assert.Equal(t, time.Duration(0), noDelay.backoff(3))
}

func TestNewClient_UnknownType(t *testing.T) {
	_, err := NewClient(Config{ClientType: "bard"}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient(Config{ClientType: ClientTypeOpenAI}, zap.NewNop())
	assert.Error(t, err, "api key is required for openai")

	c, err := NewClient(Config{ClientType: ClientTypeOllama, BaseURL: "http://ollama:11434/v1", Model: "llama3"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "llama3", c.provider.Model())
}

func TestNewImageClient(t *testing.T) {
	_, err := NewImageClient(Config{})
	assert.Error(t, err)

	c, err := NewImageClient(Config{APIKey: "sk-test", Timeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
