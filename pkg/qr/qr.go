package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Generator renders short text payloads as scannable PNG images.
type Generator struct{}

// NewGenerator constructs a QR generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// DataURL encodes the payload as a QR PNG and returns it as an inline
// data URL suitable for an <img> src attribute.
func (g *Generator) DataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
