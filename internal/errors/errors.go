package errors

import (
	"errors"
	"fmt"
)

var (
	ErrLinkNotFound = errors.New("link not found")
	ErrKeyExists    = errors.New("key already exists")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

const (
	CodeDatabase      = "DATABASE_ERROR"
	CodeKeyGeneration = "KEY_GENERATION"
	CodeQRCode        = "QR_CODE"
)

var ErrKeyGeneration = NewBusinessError(CodeKeyGeneration, "failed to generate unique key", nil)

// NewDatabaseError оборачивает ошибку драйвера в BusinessError
func NewDatabaseError(message string, cause error) *BusinessError {
	return NewBusinessError(CodeDatabase, message, cause)
}

// IsValidationError проверяет является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsBusinessError проверяет является ли ошибка бизнес-ошибкой
func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound)
}

func IsKeyExists(err error) bool {
	return errors.Is(err, ErrKeyExists)
}

func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// GetBusinessError извлекает BusinessError из ошибки
func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}
