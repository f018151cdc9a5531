package imagepkg

import (
	"bytes"
	"image"
	"image/png"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// Byte capacity of a version 40 code at medium recovery. Longer decklists
// drop to low recovery so they still fit.
const mediumCapacity = 2331

func recoveryLevel(text string) qrcode.RecoveryLevel {
	if len(text) > mediumCapacity {
		return qrcode.Low
	}
	return qrcode.Medium
}

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(text, recoveryLevel(text), size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode qr code for %d bytes", len(text))
	}
	return pngBytes, nil
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode qr png")
	}
	return img, nil
}
