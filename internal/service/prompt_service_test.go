package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/mocks"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/service"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

func newPromptService(repo *mocks.MockWorkRepository, client *mocks.MockAIClient, budget int) *service.PromptService {
	log := zap.NewNop()
	return service.NewPromptService(
		service.NewResolver(repo, log),
		service.NewExtractor(client, log),
		service.NewCompressor(client, log),
		prompt.DefaultVocabulary(),
		budget,
		log,
	)
}

func TestPromptService_MusicalWithKnowledgeBase(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)

	record := &domain.WorkRecord{
		ID: 1, Title: "캣츠", Summary: "a festival of Jellicle cats", Background: "an abandoned alley", CastSize: 2,
		Characters: []domain.Character{
			{Name: "Grizabella", Age: "40대", Gender: "여성"},
			{Name: "Rum Tum Tugger", Occupation: "가수"},
			{Name: "Victoria"},
		},
	}
	repo.On("FindMusicalByTitle", ctx, "캣츠").Return(record, nil).Once()
	repo.On("FindMusicalWithRoster", ctx, int64(1)).Return(record, nil).Once()

	client.On("Complete", ctx, mock.MatchedBy(isExtractorPrompt), mock.Anything).
		Return(`{"emotion":"감동적","theme":"ignored","lighting":"스포트라이트","character1":"ignored"}`, nil).Once()

	var draft string
	client.On("Complete", ctx, mock.MatchedBy(isCompressorPrompt), mock.MatchedBy(func(user string) bool {
		draft = user
		return true
	})).Return("Cats gather in an abandoned alley. Grizabella sings under a spotlight.", nil).Once()

	res, err := newPromptService(repo, client, 900).Generate(ctx, domain.PromptRequest{
		Title: "캣츠", Genre: "뮤지컬", Review: "감동적이었다", StyleRequest: "oil painting",
	}, true)
	require.NoError(t, err)

	assert.Contains(t, draft, "A emotional musical theater scene about a festival of Jellicle cats, set in an abandoned alley")
	assert.Contains(t, draft, "featuring exactly 2 characters only: Grizabella (40s, female), Rum Tum Tugger (singer).")
	assert.Contains(t, draft, "under spotlight.")
	assert.Contains(t, draft, "Additional style requests:\noil painting")

	assert.Equal(t, "Cats gather in an abandoned alley. Grizabella sings under a spotlight. "+prompt.SafetyClause, res.Description)
	assert.Equal(t, domain.GenreMusical, res.Meta.Genre)
	assert.True(t, res.Meta.KBMatched)
	assert.True(t, res.Meta.ShortForm)
	assert.False(t, res.Meta.Degraded)
	assert.Equal(t, "oil painting", res.Meta.StyleRequest)
	assert.Equal(t, []string{"visual", "mood", "scene"}, res.Meta.InferredKeywords)
	require.NotNil(t, res.Meta.Stages)
	assert.Equal(t, res.Description, res.Meta.Stages.Final)
	assert.True(t, strings.HasPrefix(res.Meta.Stages.Draft, "A emotional musical"))
	repo.AssertExpectations(t)
}

func TestPromptService_BandWithoutKnowledgeBase(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)

	repo.On("FindBandByName", ctx, "The Unknowns").Return(nil, models.ErrNotFound).Once()
	client.On("Complete", ctx, mock.MatchedBy(isCompressorPrompt), mock.MatchedBy(func(user string) bool {
		return strings.Contains(user, "emotional and powerful music") &&
			strings.Contains(user, "deep blue and purple lighting") &&
			strings.Contains(user, "inspired by stage design")
	})).Return("A smoky stage glows in deep blue and purple. Fog drifts through the backlights.", nil).Once()

	res, err := newPromptService(repo, client, 900).Generate(ctx, domain.PromptRequest{Title: "The Unknowns", Genre: "band"}, false)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(res.Description))
	assert.False(t, res.Meta.KBMatched)
	assert.Equal(t, domain.GenreBand, res.Meta.Genre)
	assert.Nil(t, res.Meta.Stages)
	client.AssertNotCalled(t, "Complete", mock.Anything, mock.MatchedBy(isExtractorPrompt), mock.Anything)
}

func TestPromptService_DegradedExtraction(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)

	repo.On("FindMusicalByTitle", ctx, mock.Anything).Return(nil, models.ErrNotFound)
	repo.On("FindMusicalsContaining", ctx, mock.Anything).Return(nil, nil)
	repo.On("FindMusicalsContainedIn", ctx, mock.Anything).Return(nil, nil)
	client.On("Complete", ctx, mock.MatchedBy(isExtractorPrompt), mock.Anything).Return("no json here", nil).Once()
	client.On("Complete", ctx, mock.MatchedBy(isCompressorPrompt), mock.MatchedBy(func(user string) bool {
		return strings.Contains(user, "featuring the main characters")
	})).Return("An unknown musical scene. Soft light falls.", nil).Once()

	res, err := newPromptService(repo, client, 900).Generate(ctx, domain.PromptRequest{Title: "없는작품", Genre: "musical", Review: "좋았다"}, false)
	require.NoError(t, err)
	assert.True(t, res.Meta.Degraded)
	assert.False(t, res.Meta.KBMatched)
}

func TestPromptService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.PromptRequest
		field string
	}{
		{"неизвестный жанр", domain.PromptRequest{Title: "X", Genre: "opera", Review: "r"}, "genre"},
		{"пустое название", domain.PromptRequest{Title: " ", Genre: "musical", Review: "r"}, "title"},
		{"мюзикл без отзыва", domain.PromptRequest{Title: "X", Genre: "musical"}, "review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockWorkRepository)
			client := mocks.NewMockAIClient(t)

			_, err := newPromptService(repo, client, 900).Generate(context.Background(), tt.req, false)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestPromptService_TransportErrorPropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)

	repo.On("FindBandByName", ctx, "Nell").Return(nil, models.ErrNotFound).Once()
	client.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errors.New("deadline exceeded")).Once()

	_, err := newPromptService(repo, client, 900).Generate(ctx, domain.PromptRequest{Title: "Nell", Genre: "밴드"}, false)
	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
}

func TestPromptService_FinalFitsBudget(t *testing.T) {
	ctx := context.Background()
	sentence := strings.Repeat("w", 119) + "."
	compressed := strings.TrimSpace(strings.Repeat(sentence+" ", 3))

	for _, budget := range []int{200, 300, 363, 400, 900} {
		repo := new(mocks.MockWorkRepository)
		client := mocks.NewMockAIClient(t)
		repo.On("FindBandByName", ctx, "Nell").Return(nil, models.ErrNotFound).Once()
		client.On("Complete", ctx, mock.Anything, mock.Anything).Return(compressed, nil).Once()

		res, err := newPromptService(repo, client, budget).Generate(ctx, domain.PromptRequest{Title: "Nell", Genre: "band"}, false)
		require.NoError(t, err)
		assert.LessOrEqual(t, utf8.RuneCountInString(res.Description), budget, "budget %d", budget)
		assert.Equal(t, 1, strings.Count(res.Description, prompt.SafetyClause), "budget %d", budget)
	}
}

func TestPromptService_SafetyClauseFromModelAppearsOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)
	repo.On("FindBandByName", ctx, "Nell").Return(nil, models.ErrNotFound).Once()
	client.On("Complete", ctx, mock.Anything, mock.Anything).
		Return("One. Two. Three. "+prompt.SafetyClause+" Five.", nil).Once()

	res, err := newPromptService(repo, client, 900).Generate(ctx, domain.PromptRequest{Title: "Nell", Genre: "band"}, false)
	require.NoError(t, err)
	assert.Equal(t, "One. Two. Three; Five. "+prompt.SafetyClause, res.Description)
}

func TestPromptService_InferredKeywordsNotShared(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockWorkRepository)
	client := mocks.NewMockAIClient(t)
	repo.On("FindBandByName", ctx, "Nell").Return(nil, models.ErrNotFound).Twice()
	client.On("Complete", ctx, mock.Anything, mock.Anything).Return("A band plays. Lights glow.", nil).Twice()
	svc := newPromptService(repo, client, 900)

	first, err := svc.Generate(ctx, domain.PromptRequest{Title: "Nell", Genre: "band"}, false)
	require.NoError(t, err)
	first.Meta.InferredKeywords[0] = "mutated"

	second, err := svc.Generate(ctx, domain.PromptRequest{Title: "Nell", Genre: "band"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"visual", "mood", "scene"}, second.Meta.InferredKeywords)
}
