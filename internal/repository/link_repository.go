package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kosench/shortlink/internal/database"
	apperrors "github.com/Kosench/shortlink/internal/errors"
	"github.com/Kosench/shortlink/internal/keygen"
	"github.com/Kosench/shortlink/internal/model"
)

const linkColumns = `id, "key", secret_key, target_url, is_active, clicks, expiration_date`

var _ LinkStore = (*SQLLinkStore)(nil)

// SQLLinkStore - LinkStore поверх database/sql (Postgres, SQLite, libsql)
type SQLLinkStore struct {
	db   *database.DB
	keys *keygen.Generator
	now  func() time.Time
}

func NewSQLLinkStore(db *database.DB, keys *keygen.Generator) *SQLLinkStore {
	return &SQLLinkStore{
		db:   db,
		keys: keys,
		now:  time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanLink(row rowScanner) (*model.ShortLink, error) {
	link := &model.ShortLink{}
	var expiration sql.NullTime

	err := row.Scan(
		&link.ID,
		&link.Key,
		&link.SecretKey,
		&link.TargetURL,
		&link.IsActive,
		&link.Clicks,
		&expiration,
	)
	if err != nil {
		return nil, err
	}

	if expiration.Valid {
		t := expiration.Time.UTC()
		link.ExpirationDate = &t
	}

	return link, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// Create вставляет новую строку одним INSERT
func (r *SQLLinkStore) Create(ctx context.Context, in model.NewLink) (*model.ShortLink, error) {
	key := in.Key
	if key == "" {
		generated, err := r.keys.UniqueKey(ctx, r)
		if err != nil {
			return nil, err
		}
		key = generated
	}

	suffix, err := r.keys.SecretSuffix()
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.CodeKeyGeneration, "failed to generate secret key", err)
	}

	link := &model.ShortLink{
		Key:       key,
		SecretKey: key + "_" + suffix,
		TargetURL: in.TargetURL,
		IsActive:  true,
	}

	if in.ExpirationDays > 0 {
		now := r.now().UTC()
		expiration := now.AddDate(0, 0, in.ExpirationDays)
		if !expiration.After(now) || expiration.Year() > 9999 {
			return nil, apperrors.NewValidationError("expiration_days", "Expiration date is out of range")
		}
		link.ExpirationDate = &expiration
	}

	query := `
	INSERT INTO urls ("key", secret_key, target_url, is_active, clicks, expiration_date)
	VALUES (?, ?, ?, TRUE, 0, ?)
	RETURNING id
	`

	err = r.db.QueryRowContext(
		ctx,
		r.db.Dialect.Rebind(query),
		link.Key,
		link.SecretKey,
		link.TargetURL,
		nullTime(link.ExpirationDate),
	).Scan(&link.ID)

	if database.IsUniqueViolation(err) {
		return nil, fmt.Errorf("key '%s': %w", key, apperrors.ErrKeyExists)
	}

	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to create link", err)
	}

	return link, nil
}

// FindByKey возвращает активную ссылку по ключу с ленивой проверкой срока действия
func (r *SQLLinkStore) FindByKey(ctx context.Context, key string) (*model.ShortLink, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + linkColumns + ` FROM urls WHERE "key" = ? AND is_active = TRUE`

	link, err := scanLink(tx.QueryRowContext(ctx, r.db.Dialect.Rebind(query), key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link with key '%s': %w", key, apperrors.ErrLinkNotFound)
	}

	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to get link", err)
	}

	if link.IsExpired(r.now()) {
		if err := r.deactivate(ctx, tx, link.ID); err != nil {
			return nil, err
		}

		if err := tx.Commit(); err != nil {
			return nil, apperrors.NewDatabaseError("failed to commit expiration", err)
		}

		return nil, fmt.Errorf("link with key '%s' expired: %w", key, apperrors.ErrLinkNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseError("failed to commit lookup", err)
	}

	return link, nil
}

// FindBySecret не проверяет срок действия: админ видит ссылку, пока она активна
func (r *SQLLinkStore) FindBySecret(ctx context.Context, secretKey string) (*model.ShortLink, error) {
	return r.findBySecret(ctx, r.db, secretKey)
}

func (r *SQLLinkStore) findBySecret(ctx context.Context, q queryer, secretKey string) (*model.ShortLink, error) {
	query := `SELECT ` + linkColumns + ` FROM urls WHERE secret_key = ? AND is_active = TRUE`

	link, err := scanLink(q.QueryRowContext(ctx, r.db.Dialect.Rebind(query), secretKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link with secret key '%s': %w", secretKey, apperrors.ErrLinkNotFound)
	}

	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to get link by secret key", err)
	}

	return link, nil
}

// RecordClick увеличивает счетчик кликов на 1 и возвращает обновленную строку
func (r *SQLLinkStore) RecordClick(ctx context.Context, link *model.ShortLink) (*model.ShortLink, error) {
	query := `UPDATE urls SET clicks = clicks + 1 WHERE id = ? RETURNING ` + linkColumns

	updated, err := scanLink(r.db.QueryRowContext(ctx, r.db.Dialect.Rebind(query), link.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link with ID %d: %w", link.ID, apperrors.ErrLinkNotFound)
	}

	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to increment clicks", err)
	}

	return updated, nil
}

// DeactivateBySecret помечает ссылку неактивной; без совпадения ничего не пишет
func (r *SQLLinkStore) DeactivateBySecret(ctx context.Context, secretKey string) (*model.ShortLink, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	link, err := r.findBySecret(ctx, tx, secretKey)
	if err != nil {
		return nil, err
	}

	if err := r.deactivate(ctx, tx, link.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseError("failed to commit deactivation", err)
	}

	link.IsActive = false
	return link, nil
}

// ExistsByKey проверяет ключ среди всех строк, включая неактивные
func (r *SQLLinkStore) ExistsByKey(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM urls WHERE "key" = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, r.db.Dialect.Rebind(query), key).Scan(&exists)
	if err != nil {
		return false, apperrors.NewDatabaseError("failed to check key existence", err)
	}

	return exists, nil
}

func (r *SQLLinkStore) deactivate(ctx context.Context, exec execer, id int64) error {
	query := `UPDATE urls SET is_active = FALSE WHERE id = ?`

	if _, err := exec.ExecContext(ctx, r.db.Dialect.Rebind(query), id); err != nil {
		return apperrors.NewDatabaseError("failed to deactivate link", err)
	}

	return nil
}
