package handler

import "github.com/SxxMWolf/ReMadeBE/internal/domain"

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type textResponse struct {
	Text string `json:"text"`
}

type imagePromptRequest struct {
	BasePrompt   string `json:"basePrompt" binding:"required"`
	ImageRequest string `json:"imageRequest"`
}

type imagePromptResponse struct {
	Prompt string `json:"prompt"`
}

// imageTaskRequest - либо полный запрос пайплайна, либо готовый basePrompt.
type imageTaskRequest struct {
	domain.PromptRequest
	BasePrompt string `json:"basePrompt"`
}

type imageTaskResponse struct {
	TaskID string `json:"taskId"`
}
