package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// Canvas accumulates layers on top of a background. It belongs to a single
// request and is not safe for concurrent use.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas copies background into a fresh NRGBA buffer.
func NewCanvas(background image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(background)}
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Paste resizes layer to rect's size and blends it at rect.Min using the
// layer's own alpha channel as the mask. Opaque layers simply overwrite.
func (c *Canvas) Paste(layer image.Image, rect image.Rectangle) {
	if layer.Bounds().Size() != rect.Size() {
		layer = Resize(layer, rect.Size())
	}
	c.PasteAt(layer, rect.Min)
}

// PasteAt blends layer at pt without resizing.
func (c *Canvas) PasteAt(layer image.Image, pt image.Point) {
	c.img = imaging.Overlay(c.img, layer, pt, 1.0)
}

func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// PNG encodes the canvas.
func (c *Canvas) PNG() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, c.img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
