package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer turns a booking identifier into an opaque image payload the
// client can use directly as an image source.
type Renderer interface {
	Render(id string) (string, error)
}

type pngRenderer struct {
	size int
}

// NewRenderer returns a Renderer producing base64 PNG data URLs.
func NewRenderer() Renderer {
	return &pngRenderer{size: 256}
}

func (r *pngRenderer) Render(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("qr: empty id")
	}

	png, err := qrcode.Encode(id, qrcode.Medium, r.size)
	if err != nil {
		return "", fmt.Errorf("qr: encode failed: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
