package domain

// ImageResult - ссылка на сгенерированное изображение.
type ImageResult struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
	Prompt        string `json:"prompt"`
}

// ImageTaskStatus - состояние асинхронной задачи генерации.
type ImageTaskStatus string

const (
	ImageTaskPending ImageTaskStatus = "pending"
	ImageTaskDone    ImageTaskStatus = "done"
	ImageTaskFailed  ImageTaskStatus = "failed"
)

// ImageTaskResult хранится в Redis и отдается по GET /api/v1/images/:taskId.
type ImageTaskResult struct {
	TaskID      string          `json:"taskId"`
	Status      ImageTaskStatus `json:"status"`
	Description string          `json:"prompt,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Error       string          `json:"error,omitempty"`
	Meta        *PromptMeta     `json:"meta,omitempty"`
}
