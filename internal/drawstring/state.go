package drawstring

import (
	"strings"

	"github.com/rook-computer/drawstring/internal/render"
)

const (
	defaultFontFamily = render.DefaultFamily
	defaultFontSize   = 16
	defaultFontColor  = "#000000"
)

// fontFamilies maps font codes to family names.
var fontFamilies = map[string]string{
	"r":      "Roboto",
	"f":      "monospace",
	"dseg7":  "DSEG7",
	"dseg14": "DSEG14",
}

var alignCodes = map[string]render.TextAlign{
	"l": render.TextAlignLeft,
	"c": render.TextAlignCenter,
	"r": render.TextAlignRight,
}

// State is the style state of one render call. It starts at DefaultState and only
// style commands change it.
type State struct {
	FontFamily string
	FontSize   float64
	FontColor  string
	// BackColor is painted behind text unless it is "transparent".
	BackColor string
	Align     render.TextAlign
}

func DefaultState() State {
	return State{
		FontFamily: defaultFontFamily,
		FontSize:   defaultFontSize,
		FontColor:  defaultFontColor,
		BackColor:  "transparent",
		Align:      render.TextAlignLeft,
	}
}

// HasBackground reports whether text gets a background rectangle.
func (s State) HasBackground() bool { return !isTransparent(s.BackColor) }

// fontFamilyFor maps a font code to a family, defaulting to the generic sans-serif.
func fontFamilyFor(code string) string {
	if family, ok := fontFamilies[strings.ToLower(code)]; ok {
		return family
	}
	return defaultFontFamily
}

// alignFor maps l/c/r to an alignment, defaulting to left.
func alignFor(code string) render.TextAlign {
	if a, ok := alignCodes[strings.ToLower(code)]; ok {
		return a
	}
	return render.TextAlignLeft
}
