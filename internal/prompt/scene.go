package prompt

import (
	"fmt"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

const (
	musicalMatchedTemplate = "A %s musical theater scene about %s, set in %s and depicting %s, " +
		"featuring exactly %d characters only: %s. " +
		"The scene must include exactly %d characters, no extras or background people. " +
		"With %s, under %s. " +
		"There is no visible text, letters, words, captions, logos, or watermarks in the image."

	musicalTemplate = "A %s musical theater scene about %s, set in %s and depicting %s, " +
		"featuring %s. " +
		"With %s, under %s. " +
		"There is no visible text, letters, words, captions, logos, or watermarks in the image."

	bandTemplate = "A moody alternative rock live performance scene by %s, featuring %s, set during autumn, " +
		"at %s on %s, with a stage design inspired by %s, including %s lighting, fog machines and backlights. " +
		"No characters or visible text, letters, words, captions, logos, or watermarks appear in the image."

	unspecifiedDate = "an unspecified date"
)

// Compile строит черновик сцены по шаблону жанра. Неизвестный жанр - ValidationError.
func Compile(mc domain.MergedContext) (string, error) {
	switch mc.Genre {
	case domain.GenreMusical:
		if mc.KBMatched {
			return fmt.Sprintf(musicalMatchedTemplate,
				orUnknown(mc.Emotion), orUnknown(mc.Theme), orUnknown(mc.Setting), orUnknown(mc.Relationship),
				mc.CastSize, orUnknown(mc.Roster), mc.CastSize,
				orUnknown(mc.Actions), orUnknown(mc.Lighting),
			), nil
		}
		return fmt.Sprintf(musicalTemplate,
			orUnknown(mc.Emotion), orUnknown(mc.Theme), orUnknown(mc.Setting), orUnknown(mc.Relationship),
			orUnknown(mc.Roster),
			orUnknown(mc.Actions), orUnknown(mc.Lighting),
		), nil
	case domain.GenreBand:
		date := mc.Date
		if isBlank(date) {
			date = unspecifiedDate
		}
		return fmt.Sprintf(bandTemplate,
			orUnknown(mc.BandName), orDefault(mc.NameMeaning, DefaultNameMeaning),
			orUnknown(mc.Location), date,
			orDefault(mc.Symbol, DefaultSymbol), orDefault(mc.PosterColor, DefaultPosterColor),
		), nil
	default:
		return "", domain.NewValidationError("genre", fmt.Sprintf("no scene template for genre '%s'", mc.Genre))
	}
}

func orUnknown(s string) string {
	return orDefault(s, Unknown)
}

func orDefault(s, fallback string) string {
	if isBlank(s) {
		return fallback
	}
	return s
}
