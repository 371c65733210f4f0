package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/mocks"
	"github.com/SxxMWolf/ReMadeBE/internal/service"
)

func TestExtract_JSONInsideProse(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("Complete", mock.Anything, mock.MatchedBy(isExtractorPrompt), mock.MatchedBy(func(user string) bool {
		return assert.Contains(t, user, "Review: 너무 좋았다")
	})).Return("Sure! ```json {\"emotion\":\"joy\"} ```", nil).Once()

	ext, err := service.NewExtractor(client, zap.NewNop()).Extract(context.Background(), "너무 좋았다")
	require.NoError(t, err)
	assert.False(t, ext.Degraded)
	assert.Equal(t, domain.ExtractedFeatures{Emotion: "joy"}, ext.Features)
}

func TestExtract_Degraded(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("I cannot answer {that", nil).Once()

	ext, err := service.NewExtractor(client, zap.NewNop()).Extract(context.Background(), "review")
	require.NoError(t, err)
	assert.True(t, ext.Degraded)
	assert.Equal(t, "I cannot answer {that", ext.Raw)
	assert.Equal(t, domain.ExtractedFeatures{}, ext.Features)
}

func TestExtract_TransportError(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("503")).Once()

	_, err := service.NewExtractor(client, zap.NewNop()).Extract(context.Background(), "review")
	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
}

func TestParseFeatures_NonStringValues(t *testing.T) {
	f, err := service.ParseFeatures(`{
		"emotion": ["joy", "awe"],
		"theme": 42,
		"character1": {"name": "Jekyll", "description": "a doctor"},
		"character2": {"name": "Hyde"},
		"character5": "Lucy",
		"lighting": null,
		"actions": true
	}`)
	require.NoError(t, err)
	assert.Equal(t, "joy, awe", f.Emotion)
	assert.Equal(t, "42", f.Theme)
	assert.Equal(t, "Jekyll (a doctor)", f.Characters[0])
	assert.Equal(t, "Hyde", f.Characters[1])
	assert.Equal(t, "Lucy", f.Characters[4])
	assert.Equal(t, "", f.Lighting)
	assert.Equal(t, "true", f.Actions)
}
