package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

func TestInjectSafetyClause(t *testing.T) {
	assert.Equal(t, "A stage. "+SafetyClause, InjectSafetyClause("  A stage. "))
	assert.Equal(t, SafetyClause, InjectSafetyClause(""))

	withClause := "A stage. " + SafetyClause + " Warm light."
	assert.Equal(t, withClause, InjectSafetyClause(withClause))

	// частичная фраза не считается
	partial := "No captions, no letters."
	assert.Equal(t, partial+" "+SafetyClause, InjectSafetyClause(partial))
}

func TestInjectSafetyClause_Idempotent(t *testing.T) {
	for _, in := range []string{"", "Scene.", "Scene. " + SafetyClause, "  spaced  "} {
		twice := InjectSafetyClause(InjectSafetyClause(in))
		assert.Equal(t, 1, strings.Count(twice, SafetyClause), in)
		assert.Equal(t, InjectSafetyClause(in), twice)
	}
}

func TestSafetyReserve(t *testing.T) {
	assert.Equal(t, len(SafetyClause)+1, SafetyReserve("Scene."))
	assert.Equal(t, 0, SafetyReserve("Scene. "+SafetyClause))
}

func TestBuildImagePrompt(t *testing.T) {
	out := BuildImagePrompt("A quiet stage under blue light", "watercolor style")
	assert.Equal(t, "A quiet stage under blue light. Additional request: watercolor style. "+SafetyClause, out)

	long := strings.Repeat("Scene line. ", 8)
	out = BuildImagePrompt(long, "")
	assert.Equal(t, 1, strings.Count(out, SafetyClause))
	assert.Equal(t, 6, CountSentences(out))
}

func TestStripSafetyClause(t *testing.T) {
	assert.Equal(t, "Scene.", StripSafetyClause("Scene."))
	assert.Equal(t, "One. Two.", StripSafetyClause("One. "+SafetyClause+" Two. "+SafetyClause))
}

func TestFitWithSafetyClause(t *testing.T) {
	sentence := strings.Repeat("w", 99) + "."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 3))

	for _, budget := range []int{100, 160, 250, 302, 400} {
		out := FitWithSafetyClause(text, budget)
		assert.LessOrEqual(t, utf8.RuneCountInString(out), budget, "budget %d", budget)
		assert.Equal(t, 1, strings.Count(out, SafetyClause), "budget %d", budget)
		assert.True(t, strings.HasSuffix(out, SafetyClause), "budget %d", budget)
	}

	// фраза в середине переносится в конец
	assert.Equal(t, "One. Two. "+SafetyClause, FitWithSafetyClause("One. "+SafetyClause+" Two.", 900))
}

func TestBuildImagePrompt_LongBaseFitsBudget(t *testing.T) {
	base := strings.Repeat("A long descriptive sentence about the stage and its lights. ", 25)
	require.Greater(t, utf8.RuneCountInString(base), 1400)

	out := BuildImagePrompt(base, "watercolor")
	assert.LessOrEqual(t, utf8.RuneCountInString(out), DefaultCharBudget)
	assert.True(t, strings.HasSuffix(out, SafetyClause))
	assert.Equal(t, 1, strings.Count(out, SafetyClause))
	assert.Equal(t, out, TruncateRunes(out, DefaultCharBudget))
}

func TestBuildImagePrompt_ClauseInsideOverflow(t *testing.T) {
	out := BuildImagePrompt("One. Two. Three. Four. "+SafetyClause+" Six. Seven.", "")
	assert.Equal(t, 1, strings.Count(out, SafetyClause))
	assert.Equal(t, "One. Two. Three. Four. Six; Seven. "+SafetyClause, out)
}

func TestEnforceThenInject_ClauseAppearsOnce(t *testing.T) {
	shaped := EnforceSentenceRange(StripSafetyClause("One. Two. Three. "+SafetyClause+" Five."), domain.ShortForm)
	out := InjectSafetyClause(shaped)
	assert.Equal(t, "One. Two. Three; Five. "+SafetyClause, out)
}
