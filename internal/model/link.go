package model

import "time"

// ShortLink - строка таблицы urls
type ShortLink struct {
	ID             int64      `json:"id"`
	Key            string     `json:"key"`
	SecretKey      string     `json:"secret_key"`
	TargetURL      string     `json:"target_url"`
	IsActive       bool       `json:"is_active"`
	Clicks         int64      `json:"clicks"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// IsExpired - срок действия истек строго раньше now
func (l *ShortLink) IsExpired(now time.Time) bool {
	return l.ExpirationDate != nil && l.ExpirationDate.Before(now)
}

// NewLink - входные данные LinkStore.Create. Пустой Key генерируется хранилищем,
// ExpirationDays <= 0 означает бессрочную ссылку
type NewLink struct {
	TargetURL      string
	Key            string
	ExpirationDays int
}

type CreateLinkRequest struct {
	TargetURL      string  `json:"target_url" binding:"required"`
	TargetKey      *string `json:"target_key"`
	ExpirationDays *int    `json:"expiration_days"`
}

// LinkInfo - публичное представление ShortLink с производными URL
type LinkInfo struct {
	TargetURL      string     `json:"target_url"`
	IsActive       bool       `json:"is_active"`
	Clicks         int64      `json:"clicks"`
	ExpirationDate *time.Time `json:"expiration_date"`
	URL            string     `json:"url"`
	AdminURL       string     `json:"admin_url"`
	QRURL          string     `json:"qr_url"`
}
