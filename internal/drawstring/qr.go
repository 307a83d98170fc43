package drawstring

import (
	"fmt"
	"math"

	"github.com/rook-computer/drawstring/internal/render"
)

const (
	defaultQRForeground = "#000000"
	defaultQRBackground = "#FFFFFF"
	// maxQRPixels caps the generated bitmap; larger squares are scaled up.
	maxQRPixels = 2048
)

// qrCode draws payload as a QR code in a size x size square at (x, y).
func (in *Interpreter) qrCode(p params) error {
	payload, err := p.text(0, "payload")
	if err != nil {
		return err
	}
	x, y, size := p.num(1), p.num(2), p.num(3)
	if !(size > 0) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: qr size %v", render.ErrInvalidSize, size)
	}

	fg, ok := p.optColor(4)
	if !ok {
		fg = defaultQRForeground
	}
	bg, ok := p.optColor(5)
	if !ok {
		bg = defaultQRBackground
	}
	fgc, err := render.ParseColor(fg)
	if err != nil {
		return err
	}
	bgc, err := render.ParseColor(bg)
	if err != nil {
		return err
	}

	px := int(math.Min(math.Ceil(size), maxQRPixels))
	img, err := render.GenerateQRCodeImage(payload, px, fgc, bgc)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	in.surface.DrawImage(img, x, y, size, size)
	return nil
}
