// Package qr turns payment strings into PNG QR codes.
package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/skip2/go-qrcode"
)

// Generator renders content as a PNG image.
type Generator interface {
	PNG(content string) ([]byte, error)
}

// Encoder is a Generator backed by go-qrcode.
type Encoder struct {
	Size  int // pixels per side; negative values set pixels per module instead
	Level qrcode.RecoveryLevel
}

// NewEncoder returns an Encoder with medium error correction.
func NewEncoder(size int) *Encoder {
	if size == 0 {
		size = 256
	}
	return &Encoder{Size: size, Level: qrcode.Medium}
}

func (e *Encoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: qr: empty content", pos.ErrExternalService)
	}
	png, err := qrcode.Encode(content, e.Level, e.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %w", pos.ErrExternalService, err)
	}
	return png, nil
}

// Base64 encodes png for embedding in JSON or a data: URI.
func Base64(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}
