package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

func TestCompile_MusicalMatched(t *testing.T) {
	mc := domain.MergedContext{
		Genre: domain.GenreMusical, KBMatched: true, Emotion: "joy", Theme: "love",
		Setting: "Paris", Relationship: "lovers", CastSize: 2, Roster: "A, B",
		Actions: "dancing", Lighting: "spotlight",
	}
	draft, err := Compile(mc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(draft, "A joy musical theater scene about love, set in Paris and depicting lovers"))
	assert.Contains(t, draft, "featuring exactly 2 characters only: A, B.")
	assert.Contains(t, draft, "The scene must include exactly 2 characters, no extras or background people.")
	assert.Contains(t, draft, "With dancing, under spotlight.")
}

func TestCompile_MusicalMissFillsUnknown(t *testing.T) {
	draft, err := Compile(domain.MergedContext{Genre: domain.GenreMusical, Roster: DefaultRoster, CastSize: 3})
	require.NoError(t, err)
	assert.Equal(t,
		"A unknown musical theater scene about unknown, set in unknown and depicting unknown, "+
			"featuring the main characters. With unknown, under unknown. "+
			"There is no visible text, letters, words, captions, logos, or watermarks in the image.",
		draft)
}

func TestCompile_BandDefaults(t *testing.T) {
	draft, err := Compile(MergeBand("Nell", nil, "", "  ", DefaultVocabulary()))
	require.NoError(t, err)
	assert.Contains(t, draft, "by Nell, featuring emotional and powerful music")
	assert.Contains(t, draft, "at unknown on an unspecified date")
	assert.Contains(t, draft, "inspired by stage design, including deep blue and purple lighting")
	assert.Contains(t, draft, "No characters")
}

func TestCompile_UnknownGenre(t *testing.T) {
	for _, g := range []domain.Genre{"", "opera", "MUSICAL"} {
		_, err := Compile(domain.MergedContext{Genre: g})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, string(g))
		assert.Equal(t, "genre", vErr.Field)
	}
}
