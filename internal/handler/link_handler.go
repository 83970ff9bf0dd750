package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"

	apperrors "github.com/Kosench/shortlink/internal/errors"
	"github.com/Kosench/shortlink/internal/model"
	"github.com/gin-gonic/gin"
)

const bannerText = "This is the URL shortener API"

// LinkService - операции над ссылками, которые нужны хендлерам
type LinkService interface {
	CreateLink(ctx context.Context, req *model.CreateLinkRequest) (*model.LinkInfo, error)
	Forward(ctx context.Context, key string) (string, error)
	QRCode(ctx context.Context, key string) ([]byte, error)
	AdminInfo(ctx context.Context, secretKey string) (*model.LinkInfo, error)
	DeleteLink(ctx context.Context, secretKey string) (*model.ShortLink, error)
}

type LinkHandler struct {
	links LinkService
}

func NewLinkHandler(links LinkService) *LinkHandler {
	return &LinkHandler{
		links: links,
	}
}

func (h *LinkHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, bannerText)
}

func (h *LinkHandler) CreateLink(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid_request",
			"detail": "Invalid JSON format",
		})
		return
	}

	info, err := h.links.CreateLink(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *LinkHandler) Redirect(c *gin.Context) {
	target, err := h.links.Forward(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusMovedPermanently, target)
}

func (h *LinkHandler) QRCode(c *gin.Context) {
	png, err := h.links.QRCode(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *LinkHandler) AdminInfo(c *gin.Context) {
	info, err := h.links.AdminInfo(c.Request.Context(), c.Param("secret_key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *LinkHandler) DeleteLink(c *gin.Context) {
	link, err := h.links.DeleteLink(c.Request.Context(), c.Param("secret_key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf("Successfully deleted shortened URL for '%s'!", link.TargetURL),
	})
}

// handleError обрабатывает ошибки и возвращает соответствующие HTTP коды
func (h *LinkHandler) handleError(c *gin.Context, err error) {
	// Проверяем ValidationError
	if validationErr := apperrors.GetValidationError(err); validationErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_error",
			"detail": validationErr.Message,
			"field":  validationErr.Field,
		})
		return
	}

	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"detail": fmt.Sprintf("URL '%s' doesn't exist", requestURL(c.Request)),
		})
		return
	}

	if apperrors.IsKeyExists(err) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "key_exists",
			"detail": "The requested key is already taken",
		})
		return
	}

	// Проверяем BusinessError
	if businessErr := apperrors.GetBusinessError(err); businessErr != nil {
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "business_error",
			"detail": businessErr.Message,
			"code":   businessErr.Code,
		})
		return
	}

	// Неизвестная ошибка
	log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  "internal_error",
		"detail": "An unexpected error occurred",
	})
}

// requestURL восстанавливает полный URL запроса, как его видел клиент
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
