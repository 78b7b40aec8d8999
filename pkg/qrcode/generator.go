package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent     = errors.New("qrcode: content cannot be empty")
	ErrGenerationFailed = errors.New("qrcode: failed to generate image")
)

// DefaultSize is the pixel size used when the caller passes a non-positive size.
const DefaultSize = 256

// Generate encodes content into a PNG QR code of the given pixel size.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	return png, nil
}

// DataURI encodes content into a QR code and returns it as a
// data:image/png;base64 URI ready for an <img> src attribute.
func DataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
