package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// PNG кодирует content в QR-код размером size x size пикселей
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return png, nil
}
