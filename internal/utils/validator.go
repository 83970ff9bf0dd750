package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

const maxURLLength = 2048

func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return apperrors.NewValidationError("target_url", "URL cannot be empty")
	}

	if len(rawURL) > maxURLLength {
		return apperrors.NewValidationError("target_url", "URL is too long (max 2048 characters)")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("target_url", fmt.Sprintf("invalid URL format: %v", err))
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.NewValidationError("target_url", "URL must start with http:// or https://")
	}

	if parsedURL.Hostname() == "" {
		return apperrors.NewValidationError("target_url", "URL must contain a valid host")
	}

	return nil
}

func SanitizeInput(input string) string {
	// Удаляем управляющие символы и обрезаем пробелы
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1 // удаляем символ
		}
		return r
	}, input)

	return strings.TrimSpace(result)
}

// SanitizeKey оставляет только ASCII буквы, цифры, '-' и '_'
func SanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return -1
	}, key)
}
