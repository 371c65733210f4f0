package domain

import "strings"

// Genre - закрытый набор жанров, для которых есть шаблон сцены.
type Genre string

const (
	GenreMusical Genre = "musical"
	GenreBand    Genre = "band"
)

// ParseGenre принимает английские и корейские названия жанров.
func ParseGenre(raw string) (Genre, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "musical", "뮤지컬":
		return GenreMusical, nil
	case "band", "밴드":
		return GenreBand, nil
	}
	return "", NewValidationError("genre", "unsupported genre: '"+raw+"'")
}

func (g Genre) String() string { return string(g) }
