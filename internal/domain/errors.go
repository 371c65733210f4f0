package domain

import (
	"errors"
	"fmt"
)

// ErrValidation - общий sentinel для errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError - ошибка входных данных, указывающая поле.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransportError - внешняя модель недоступна после всех ретраев. Запрос можно повторить.
type TransportError struct {
	Op  string
	Err error
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
