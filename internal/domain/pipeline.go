package domain

// CharacterSlots - число слотов characterN в ответе экстрактора.
const CharacterSlots = 5

// ExtractedFeatures - признаки, извлеченные моделью из текста отзыва.
type ExtractedFeatures struct {
	Emotion      string                 `json:"emotion"`
	Theme        string                 `json:"theme"`
	Setting      string                 `json:"setting"`
	Relationship string                 `json:"relationship"`
	Actions      string                 `json:"actions"`
	Lighting     string                 `json:"lighting"`
	Characters   [CharacterSlots]string `json:"characters"`
}

// Extraction - результат экстрактора. Degraded означает, что ответ модели не удалось разобрать,
// Raw хранит исходный текст, а Features пусты.
type Extraction struct {
	Features ExtractedFeatures
	Degraded bool
	Raw      string
}

// MergedContext - значения полей после слияния справочника и извлеченных признаков.
type MergedContext struct {
	Genre        Genre
	KBMatched    bool
	Emotion      string
	Theme        string
	Setting      string
	Relationship string
	Actions      string
	Lighting     string
	CastSize     int
	// Characters - отрендеренные дескрипторы (не больше MaxRosterEntries).
	Characters []string
	// Roster - готовая фраза со списком персонажей для шаблона.
	Roster string

	BandName    string
	NameMeaning string
	PosterColor string
	Symbol      string
	Location    string
	Date        string
}

// SentenceRange - допустимое количество предложений после сжатия.
type SentenceRange struct {
	Min int
	Max int
}

var (
	// ShortForm - основной путь генерации описания.
	ShortForm = SentenceRange{Min: 2, Max: 3}
	// ExtendedForm - сборка промпта изображения из готового текста.
	ExtendedForm = SentenceRange{Min: 4, Max: 5}
)

// PromptRequest - входные данные запроса на генерацию описания.
type PromptRequest struct {
	Title        string `json:"title"`
	Genre        string `json:"genre"`
	Review       string `json:"review"`
	Location     string `json:"location,omitempty"`
	Date         string `json:"date,omitempty"`
	StyleRequest string `json:"imageRequest,omitempty"`
}

// SceneDescription - значения стадий. Каждая стадия создает новое значение.
type SceneDescription struct {
	Draft      string `json:"draft"`
	Compressed string `json:"compressed"`
	Final      string `json:"final"`
}

// PromptMeta - диагностика для вызывающей стороны.
type PromptMeta struct {
	Genre            Genre             `json:"structure"`
	KBMatched        bool              `json:"kbMatched"`
	StyleRequest     string            `json:"imageRequest,omitempty"`
	ShortForm        bool              `json:"shortForm"`
	Degraded         bool              `json:"degraded"`
	InferredKeywords []string          `json:"inferred_keywords"`
	Stages           *SceneDescription `json:"stages,omitempty"`
}

// PromptResult - итоговое описание и метаданные.
type PromptResult struct {
	Description string     `json:"prompt"`
	Meta        PromptMeta `json:"meta"`
}
