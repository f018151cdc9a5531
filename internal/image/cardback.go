package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Card faces on TTS sheets are cut at this size.
const (
	CardWidth  = 409
	CardHeight = 585
)

var (
	cardBackBorder = color.NRGBA{R: 0x1f, G: 0x3a, B: 0x8a, A: 0xff}
	cardBackFill   = color.NRGBA{R: 0x2f, G: 0x5b, B: 0xd6, A: 0xff}
	cardBackBand   = color.NRGBA{R: 0xf2, G: 0xc9, B: 0x1c, A: 0xff}
)

// RenderCardBack draws the default card back: a bordered panel with a band
// across the middle.
func RenderCardBack() image.Image {
	canvas := imaging.New(CardWidth, CardHeight, cardBackBorder)

	const border = 24
	inner := imaging.New(CardWidth-2*border, CardHeight-2*border, cardBackFill)
	canvas = imaging.Paste(canvas, inner, image.Pt(border, border))

	const bandHeight = 48
	band := imaging.New(CardWidth-2*border, bandHeight, cardBackBand)
	canvas = imaging.Paste(canvas, band, image.Pt(border, (CardHeight-bandHeight)/2))

	return canvas
}

// LoadCardBack opens a card back image from disk and crops it to the card
// size.
func LoadCardBack(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open card back %s", path)
	}
	return imaging.Fill(img, CardWidth, CardHeight, imaging.Center, imaging.Lanczos), nil
}

// CardBackPNG returns the PNG for the configured card back, or the rendered
// default when path is empty.
func CardBackPNG(path string) ([]byte, error) {
	img := RenderCardBack()
	if path != "" {
		loaded, err := LoadCardBack(path)
		if err != nil {
			return nil, err
		}
		img = loaded
	}
	return EncodePNG(img)
}

func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode png")
	}
	return buf.Bytes(), nil
}
