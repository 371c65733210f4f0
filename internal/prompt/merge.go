package prompt

import (
	"fmt"
	"strings"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// Значения по умолчанию для групп без записи в справочнике.
const (
	DefaultNameMeaning = "emotional and powerful music"
	DefaultPosterColor = "deep blue and purple"
	DefaultSymbol      = "stage design"
	// DefaultRoster - состав, когда нет ни записи, ни извлеченных персонажей.
	DefaultRoster = "the main characters"
)

// MergeMusical сливает запись справочника (может быть nil) с извлеченными признаками.
// Непустое значение справочника побеждает. Все текстовые поля проходят через словарь.
func MergeMusical(record *domain.WorkRecord, ext domain.ExtractedFeatures, vocab *Vocabulary) domain.MergedContext {
	var summary, background string
	if record != nil {
		summary, background = record.Summary, record.Background
	}

	mc := domain.MergedContext{
		Genre:        domain.GenreMusical,
		KBMatched:    record != nil,
		Emotion:      vocab.NormalizeOptional(ext.Emotion),
		Theme:        prefer(vocab, summary, ext.Theme),
		Setting:      prefer(vocab, background, ext.Setting),
		Relationship: vocab.NormalizeOptional(ext.Relationship),
		Actions:      vocab.NormalizeOptional(ext.Actions),
		Lighting:     vocab.NormalizeOptional(ext.Lighting),
		CastSize:     record.EffectiveCastSize(),
	}

	switch {
	case record != nil && len(record.Characters) > 0:
		n := min(mc.CastSize, len(record.Characters), domain.MaxRosterEntries)
		mc.Characters = make([]string, 0, n)
		for _, c := range record.Characters[:n] {
			mc.Characters = append(mc.Characters, RenderCharacter(c, vocab))
		}
		mc.Roster = strings.Join(mc.Characters, ", ")
	case record != nil:
		mc.Roster = fmt.Sprintf("%d distinct characters", mc.CastSize)
	default:
		for _, slot := range ext.Characters {
			if c := vocab.NormalizeOptional(CleanCharacterDescription(slot)); c != "" {
				mc.Characters = append(mc.Characters, c)
			}
		}
		mc.Roster = JoinEnglishList(mc.Characters)
		if mc.Roster == "" {
			mc.Roster = DefaultRoster
		}
	}
	return mc
}

// MergeBand собирает контекст для группы. Отсутствующие поля записи заменяются значениями по умолчанию.
func MergeBand(title string, band *domain.BandRecord, location, date string, vocab *Vocabulary) domain.MergedContext {
	mc := domain.MergedContext{
		Genre:       domain.GenreBand,
		KBMatched:   band != nil,
		CastSize:    domain.DefaultCastSize,
		NameMeaning: DefaultNameMeaning,
		PosterColor: DefaultPosterColor,
		Symbol:      DefaultSymbol,
		Location:    vocab.NormalizeOptional(location),
		Date:        strings.TrimSpace(date),
	}

	name := title
	if band != nil {
		name = firstNonBlank(title, band.BandName)
		if v := vocab.NormalizeOptional(band.NameMeaning); v != "" {
			mc.NameMeaning = v
		}
		if v := vocab.NormalizeOptional(band.PosterColor); v != "" {
			mc.PosterColor = v
		}
		if v := vocab.NormalizeOptional(band.Symbol); v != "" {
			mc.Symbol = v
		}
		mc.Setting = vocab.NormalizeOptional(band.Background)
		mc.Theme = vocab.NormalizeOptional(band.Summary)
	}
	mc.BandName = vocab.NormalizeOptional(name)
	return mc
}

func prefer(vocab *Vocabulary, canonical, extracted string) string {
	if v := vocab.NormalizeOptional(canonical); v != "" {
		return v
	}
	return vocab.NormalizeOptional(extracted)
}
