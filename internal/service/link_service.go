package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/Kosench/shortlink/internal/errors"
	"github.com/Kosench/shortlink/internal/keygen"
	"github.com/Kosench/shortlink/internal/model"
	"github.com/Kosench/shortlink/internal/qrcode"
	"github.com/Kosench/shortlink/internal/repository"
	"github.com/Kosench/shortlink/internal/utils"
)

// MaxExpirationDays держит expiration_date в пределах 9999 года,
// дальше которого время не сериализуется в RFC3339
const MaxExpirationDays = 2_000_000

type LinkService struct {
	store   repository.LinkStore
	baseURL string
	qrSize  int
}

func NewLinkService(store repository.LinkStore, baseURL string, qrSize int) *LinkService {
	return &LinkService{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		qrSize:  qrSize,
	}
}

func (s *LinkService) CreateLink(ctx context.Context, req *model.CreateLinkRequest) (*model.LinkInfo, error) {
	targetURL := utils.SanitizeInput(req.TargetURL)
	if err := utils.ValidateURL(targetURL); err != nil {
		return nil, fmt.Errorf("validate error: %w", err)
	}

	var key string
	if req.TargetKey != nil {
		// пустой после очистки ключ генерируется заново
		key = utils.SanitizeKey(*req.TargetKey)
	}
	if keygen.IsReserved(key) {
		return nil, apperrors.NewValidationError("target_key", fmt.Sprintf("Key '%s' is reserved", key))
	}

	days := 0
	if req.ExpirationDays != nil {
		if *req.ExpirationDays < 1 {
			return nil, apperrors.NewValidationError("expiration_days", "Expiration days must be set to at least 1 day")
		}
		if *req.ExpirationDays > MaxExpirationDays {
			return nil, apperrors.NewValidationError("expiration_days", fmt.Sprintf("Expiration days must not exceed %d", MaxExpirationDays))
		}
		days = *req.ExpirationDays
	}

	link, err := s.store.Create(ctx, model.NewLink{
		TargetURL:      targetURL,
		Key:            key,
		ExpirationDays: days,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return s.buildLinkInfo(link), nil
}

// Forward находит ссылку по ключу, засчитывает клик и возвращает целевой URL
func (s *LinkService) Forward(ctx context.Context, key string) (string, error) {
	link, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}

	if _, err := s.store.RecordClick(ctx, link); err != nil {
		return "", fmt.Errorf("failed to record click: %w", err)
	}

	return link.TargetURL, nil
}

func (s *LinkService) QRCode(ctx context.Context, key string) ([]byte, error) {
	link, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.PNG(link.TargetURL, s.qrSize)
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.CodeQRCode, "failed to render QR code", err)
	}

	return png, nil
}

func (s *LinkService) AdminInfo(ctx context.Context, secretKey string) (*model.LinkInfo, error) {
	link, err := s.store.FindBySecret(ctx, secretKey)
	if err != nil {
		return nil, err
	}

	return s.buildLinkInfo(link), nil
}

func (s *LinkService) DeleteLink(ctx context.Context, secretKey string) (*model.ShortLink, error) {
	return s.store.DeactivateBySecret(ctx, secretKey)
}

func (s *LinkService) buildLinkInfo(link *model.ShortLink) *model.LinkInfo {
	return &model.LinkInfo{
		TargetURL:      link.TargetURL,
		IsActive:       link.IsActive,
		Clicks:         link.Clicks,
		ExpirationDate: link.ExpirationDate,
		URL:            fmt.Sprintf("%s/%s", s.baseURL, link.Key),
		AdminURL:       fmt.Sprintf("%s/admin/%s", s.baseURL, link.SecretKey),
		QRURL:          fmt.Sprintf("%s/qr/%s", s.baseURL, link.Key),
	}
}
