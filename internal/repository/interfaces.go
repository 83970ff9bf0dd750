package repository

import (
	"context"

	"github.com/Kosench/shortlink/internal/model"
)

// LinkStore - единственная точка записи в таблицу urls.
// Отсутствие строки сообщается ошибкой, обернутой вокруг apperrors.ErrLinkNotFound.
type LinkStore interface {
	Create(ctx context.Context, link model.NewLink) (*model.ShortLink, error)
	// FindByKey может писать: просроченная активная строка деактивируется
	// и возвращается как не найденная
	FindByKey(ctx context.Context, key string) (*model.ShortLink, error)
	FindBySecret(ctx context.Context, secretKey string) (*model.ShortLink, error)
	RecordClick(ctx context.Context, link *model.ShortLink) (*model.ShortLink, error)
	DeactivateBySecret(ctx context.Context, secretKey string) (*model.ShortLink, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
}
