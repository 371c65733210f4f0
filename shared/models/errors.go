package models

import "errors"

// Общие ошибки приложения
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
	ErrCacheMiss      = errors.New("cache miss")
)

// Коды ошибок для ErrorResponse.Code
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeUpstream    = "UPSTREAM_UNAVAILABLE"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMITED"
	CodeInternal    = "INTERNAL_ERROR"
)
