package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
)

const labelMargin = 32

// ComposeDeckLabel pastes qr onto the middle of a card back, giving a
// printable label whose code scans back to the decklist.
func ComposeDeckLabel(cardBack image.Image, qr image.Image) image.Image {
	if cardBack == nil {
		cardBack = RenderCardBack()
	}
	canvas := imaging.Clone(cardBack)
	if qr == nil {
		return canvas
	}

	b := canvas.Bounds()
	side := b.Dx() - 2*labelMargin
	if h := b.Dy() - 2*labelMargin; h < side {
		side = h
	}
	if side <= 0 {
		return canvas
	}

	q := imaging.Resize(qr, side, side, imaging.NearestNeighbor)
	return imaging.PasteCenter(canvas, q)
}

// DeckLabelPNG renders the label for text on top of the card back PNG at
// cardBackPath (or the default back).
func DeckLabelPNG(text string, cardBackPath string) ([]byte, error) {
	back := RenderCardBack()
	if cardBackPath != "" {
		loaded, err := LoadCardBack(cardBackPath)
		if err != nil {
			return nil, err
		}
		back = loaded
	}

	qr, err := GenerateQRImage(text, CardWidth-2*labelMargin)
	if err != nil {
		return nil, err
	}
	return EncodePNG(ComposeDeckLabel(back, qr))
}
