package messaging

import "github.com/SxxMWolf/ReMadeBE/internal/domain"

// Имена очередей
const (
	ImageTaskQueueName   = "image_generation_tasks"
	ImageResultQueueName = "image_generation_results"
)

// ImageTaskPayload - задача на генерацию изображения.
// Если BasePrompt задан, описание собирается из него без вызова пайплайна.
type ImageTaskPayload struct {
	TaskID     string               `json:"task_id"`
	Request    domain.PromptRequest `json:"request"`
	BasePrompt string               `json:"base_prompt,omitempty"`
}

// ImageResultPayload - результат обработки задачи воркером.
type ImageResultPayload struct {
	TaskID      string             `json:"task_id"`
	Success     bool               `json:"success"`
	Description string             `json:"prompt,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	Error       string             `json:"error,omitempty"`
	Meta        *domain.PromptMeta `json:"meta,omitempty"`
}
