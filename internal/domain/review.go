package domain

// OrganizeRequest - отзыв для структурирования. Жанр не обязателен.
type OrganizeRequest struct {
	Genre    string `json:"genre"`
	Title    string `json:"title"`
	Review   string `json:"review" binding:"required"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
}

// StructuredMeta - поля отзыва, собранные из анализа и справочника.
type StructuredMeta struct {
	Genre        string   `json:"genre"`
	Title        string   `json:"title"`
	Date         string   `json:"date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Theme        string   `json:"theme,omitempty"`
	Emotion      string   `json:"emotion,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	Setting      string   `json:"setting,omitempty"`
	Lighting     string   `json:"lighting,omitempty"`
	Actions      string   `json:"actions,omitempty"`
	Characters   []string `json:"characters"`
	DBSummary    string   `json:"dbSummary,omitempty"`
	Highlights   []string `json:"highlights"`
}

// OrganizedReview - результат структурирования отзыва.
type OrganizedReview struct {
	Structured  StructuredMeta    `json:"structured"`
	Narrative   string            `json:"narrative"`
	RawAnalysis ExtractedFeatures `json:"rawAnalysis"`
	Degraded    bool              `json:"degraded"`
	DBSummary   string            `json:"dbSummary,omitempty"`
}
