package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
	"github.com/SxxMWolf/ReMadeBE/internal/mocks"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/worker"
)

type fixture struct {
	prompts   *mocks.MockPromptGenerator
	images    *mocks.MockImageGenerator
	store     *mocks.MockTaskResultStore
	publisher *mocks.MockPublisher
	handler   *worker.Handler
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		prompts:   new(mocks.MockPromptGenerator),
		images:    new(mocks.MockImageGenerator),
		store:     new(mocks.MockTaskResultStore),
		publisher: new(mocks.MockPublisher),
	}
	f.handler = worker.NewHandler(f.prompts, f.images, f.store, f.publisher, zap.NewNop())
	t.Cleanup(func() {
		f.prompts.AssertExpectations(t)
		f.images.AssertExpectations(t)
		f.store.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})
	return f
}

func taskBody(t *testing.T, task messaging.ImageTaskPayload) []byte {
	body, err := json.Marshal(task)
	require.NoError(t, err)
	return body
}

func TestHandle_GeneratesAndPublishes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := domain.PromptRequest{Title: "캣츠", Genre: "musical", Review: "좋았다"}

	f.prompts.On("Generate", ctx, req, false).Return(&domain.PromptResult{
		Description: "A scene. " + prompt.SafetyClause,
		Meta:        domain.PromptMeta{Genre: domain.GenreMusical, KBMatched: true},
	}, nil).Once()
	f.images.On("Generate", ctx, "A scene. "+prompt.SafetyClause).
		Return(&domain.ImageResult{URL: "https://img/1.png"}, nil).Once()
	f.store.On("Save", ctx, mock.MatchedBy(func(r domain.ImageTaskResult) bool {
		return r.TaskID == "t-1" && r.Status == domain.ImageTaskDone && r.ImageURL == "https://img/1.png" &&
			r.Meta != nil && r.Meta.KBMatched
	})).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(p messaging.ImageResultPayload) bool {
		return p.TaskID == "t-1" && p.Success && p.ImageURL == "https://img/1.png" && p.Error == ""
	}), "t-1").Return(nil).Once()

	decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{TaskID: "t-1", Request: req}), false)
	assert.Equal(t, messaging.Ack, decision)
}

func TestHandle_BasePromptSkipsPipeline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := "A quiet stage. A lone singer. Warm light. Velvet curtains"
	expected := prompt.BuildImagePrompt(base, "watercolor")

	f.images.On("Generate", ctx, expected).Return(&domain.ImageResult{URL: "u"}, nil).Once()
	f.store.On("Save", ctx, mock.MatchedBy(func(r domain.ImageTaskResult) bool {
		return r.Description == expected && r.Status == domain.ImageTaskDone
	})).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything, "t-2").Return(nil).Once()

	decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{
		TaskID:     "t-2",
		Request:    domain.PromptRequest{StyleRequest: "watercolor"},
		BasePrompt: base,
	}), false)
	assert.Equal(t, messaging.Ack, decision)
	f.prompts.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_ValidationFailureIsAcked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := domain.PromptRequest{Title: "x", Genre: "opera", Review: "r"}

	f.prompts.On("Generate", ctx, req, false).Return(nil, domain.NewValidationError("genre", "unsupported genre")).Once()
	f.store.On("Save", ctx, mock.MatchedBy(func(r domain.ImageTaskResult) bool {
		return r.Status == domain.ImageTaskFailed && r.Error == "invalid genre: unsupported genre"
	})).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(p messaging.ImageResultPayload) bool {
		return !p.Success && p.Error != ""
	}), "t-3").Return(nil).Once()

	decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{TaskID: "t-3", Request: req}), false)
	assert.Equal(t, messaging.Ack, decision)
}

func TestHandle_TransportFailureRequeuedOnce(t *testing.T) {
	ctx := context.Background()
	upstream := domain.NewTransportError("generate image", errors.New("503"))
	req := domain.PromptRequest{Title: "t", Genre: "band"}
	result := &domain.PromptResult{Description: "A band plays. " + prompt.SafetyClause}

	t.Run("first delivery", func(t *testing.T) {
		f := newFixture(t)
		f.prompts.On("Generate", ctx, req, false).Return(result, nil).Once()
		f.images.On("Generate", ctx, result.Description).Return(nil, upstream).Once()

		decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{TaskID: "t-4", Request: req}), false)
		assert.Equal(t, messaging.Requeue, decision)
	})

	t.Run("redelivered", func(t *testing.T) {
		f := newFixture(t)
		f.prompts.On("Generate", ctx, req, false).Return(result, nil).Once()
		f.images.On("Generate", ctx, result.Description).Return(nil, upstream).Once()
		f.store.On("Save", ctx, mock.MatchedBy(func(r domain.ImageTaskResult) bool {
			return r.Status == domain.ImageTaskFailed && r.Description == result.Description
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything, "t-4").Return(nil).Once()

		decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{TaskID: "t-4", Request: req}), true)
		assert.Equal(t, messaging.Ack, decision)
	})
}

func TestHandle_InvalidPayloadDiscarded(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, messaging.Discard, f.handler.Handle(context.Background(), []byte("{not json"), false))
	assert.Equal(t, messaging.Discard, f.handler.Handle(context.Background(), []byte(`{"request":{}}`), false))
}

func TestHandle_StoreFailureStillPublishes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.images.On("Generate", ctx, mock.Anything).Return(&domain.ImageResult{URL: "u"}, nil).Once()
	f.store.On("Save", ctx, mock.Anything).Return(errors.New("redis down")).Once()
	f.publisher.On("Publish", ctx, mock.Anything, "t-5").Return(nil).Once()

	decision := f.handler.Handle(ctx, taskBody(t, messaging.ImageTaskPayload{TaskID: "t-5", BasePrompt: "One. Two. Three. Four."}), false)
	assert.Equal(t, messaging.Ack, decision)
}
