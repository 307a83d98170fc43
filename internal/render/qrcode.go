package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for payload drawn in fg on bg.
// sizePx is a minimum; go-qrcode returns a larger image if the code needs it.
func GenerateQRCodeImage(payload string, sizePx int, fg, bg color.Color) (image.Image, error) {
	if payload == "" {
		return nil, errors.New("empty qr payload")
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	if fg != nil {
		qrCode.ForegroundColor = fg
	}
	if bg != nil {
		qrCode.BackgroundColor = bg
	}
	qrCode.DisableBorder = true

	return qrCode.Image(sizePx), nil
}
