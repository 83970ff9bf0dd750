package keygen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

const (
	DefaultKeyLength   = 5
	DefaultMaxRetries  = 5
	SecretSuffixLength = 8
	alphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// reservedKeys совпадают со статическими маршрутами роутера (/health, /info)
var reservedKeys = map[string]struct{}{
	"health": {},
	"info":   {},
}

// IsReserved сообщает, что ключ занят служебным маршрутом
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// KeyChecker сообщает, занят ли ключ какой-либо строкой хранилища
type KeyChecker interface {
	ExistsByKey(ctx context.Context, key string) (bool, error)
}

type Generator struct {
	length     int
	maxRetries int
}

func NewGenerator(length, maxRetries int) *Generator {
	if length <= 0 {
		length = DefaultKeyLength
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Generator{
		length:     length,
		maxRetries: maxRetries,
	}
}

// RandomString возвращает length случайных символов из [A-Za-z0-9]
func RandomString(length int) (string, error) {
	code := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := range code {
		randomIndex, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[randomIndex.Int64()]
	}

	return string(code), nil
}

// UniqueKey генерирует ключи, пока checker не сообщит о свободном.
// После maxRetries коллизий возвращает ErrKeyGeneration.
func (g *Generator) UniqueKey(ctx context.Context, checker KeyChecker) (string, error) {
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		key, err := RandomString(g.length)
		if err != nil {
			return "", fmt.Errorf("failed to generate key: %w", err)
		}

		if IsReserved(key) {
			continue
		}

		exists, err := checker.ExistsByKey(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check key %q: %w", key, err)
		}

		if !exists {
			return key, nil
		}
	}

	return "", fmt.Errorf("no free key after %d attempts: %w", g.maxRetries, apperrors.ErrKeyGeneration)
}

// SecretSuffix возвращает случайный суффикс секретного ключа
func (g *Generator) SecretSuffix() (string, error) {
	return RandomString(SecretSuffixLength)
}
