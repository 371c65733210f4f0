package models

// ErrorResponse - стандартная структура ответа об ошибке.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// StatusResponse - ответ healthcheck.
type StatusResponse struct {
	Status string `json:"status"`
}
