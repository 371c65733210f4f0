package domain

// DefaultCastSize используется, когда в базе не указано число главных героев.
const DefaultCastSize = 3

// MaxRosterEntries - сколько персонажей максимум попадает в описание.
const MaxRosterEntries = 5

// Character - персонаж из справочника. Обязательно только имя.
type Character struct {
	Name        string `json:"name"`
	Age         string `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkRecord - справочная запись о мюзикле.
type WorkRecord struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Summary    string      `json:"summary,omitempty"`
	Background string      `json:"background,omitempty"`
	CastSize   int         `json:"cast_size,omitempty"`
	Characters []Character `json:"characters,omitempty"`
}

// EffectiveCastSize возвращает CastSize или значение по умолчанию.
func (w *WorkRecord) EffectiveCastSize() int {
	if w == nil || w.CastSize <= 0 {
		return DefaultCastSize
	}
	return w.CastSize
}

// BandRecord - справочная запись о группе.
type BandRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Background  string `json:"background,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	BandName    string `json:"band_name"`
	NameMeaning string `json:"name_meaning,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	PosterColor string `json:"poster_color,omitempty"`
	Genre       string `json:"genre,omitempty"`
}
