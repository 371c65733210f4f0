package prompt

import (
	"strings"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// BuildImagePrompt собирает промпт изображения из готового текста:
// пожелание пользователя, приведение к 4-5 предложениям, защитная фраза.
// Результат вместе с фразой не длиннее DefaultCharBudget.
func BuildImagePrompt(base, style string) string {
	text := withTerminal(collapseSpaces(StripSafetyClause(base)))
	if s := collapseSpaces(style); s != "" {
		text = strings.TrimSpace(text + " Additional request: " + withTerminal(s))
	}
	return FitWithSafetyClause(EnforceSentenceRange(text, domain.ExtendedForm), DefaultCharBudget)
}

func withTerminal(s string) string {
	if s == "" {
		return s
	}
	if r := []rune(s); isTerminal(r[len(r)-1]) {
		return s
	}
	return s + "."
}
