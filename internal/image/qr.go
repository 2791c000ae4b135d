package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinQRSize     = 64
	MaxQRSize     = 1024
	DefaultQRSize = 256
)

// GenerateQRPNG returns PNG bytes of a QR code for text. size is clamped to
// [MinQRSize, MaxQRSize].
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size < MinQRSize {
		size = MinQRSize
	}
	if size > MaxQRSize {
		size = MaxQRSize
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
