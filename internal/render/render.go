package render

import (
	"errors"
	"image"
	"math"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidSize  = errors.New("invalid size")
)

// Surface is the immediate-mode 2-D drawing context a script is executed against.
// It mirrors the subset of an HTML canvas context the interpreter needs.
//
// Colors are passed as strings and parsed by the surface; an unparsable color is
// rejected with an error wrapping ErrInvalidColor and leaves the previous style in
// place. Text y coordinates are alphabetic baselines; x is interpreted according to
// the active TextAlign.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width int, height int)

	// Clear resets every pixel to fully transparent.
	Clear()

	SetFillColor(c string) error
	SetStrokeColor(c string) error
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	// Path construction. Arc angles are radians, measured clockwise on screen.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	// Text primitives.
	SetFont(family string, size float64) error
	SetTextAlign(align TextAlign)
	MeasureText(text string) float64
	FillText(text string, x, y float64)

	// DrawImage scales img into the rectangle (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

func (a TextAlign) String() string {
	switch a {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	default:
		return "left"
	}
}

// AlignOffset returns how far left of the anchor a run of the given width starts.
func AlignOffset(align TextAlign, width float64) float64 {
	switch align {
	case TextAlignCenter:
		return width / 2
	case TextAlignRight:
		return width
	default:
		return 0
	}
}

// ValidFontSize reports whether size can be used to build a font face.
func ValidFontSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
