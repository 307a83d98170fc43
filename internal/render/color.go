package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a surface color string: #rgb, #rrggbb, #rrggbbaa, "transparent"
// or a CSS/SVG color keyword (case-insensitive).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	name := strings.ToLower(s)
	if name == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	// Straight alpha in the string, premultiplied in color.RGBA.
	r, g, b, a := uint32(v>>24), uint32(v>>16&0xff), uint32(v>>8&0xff), uint32(v&0xff)
	return color.RGBA{
		R: uint8(r * a / 0xff),
		G: uint8(g * a / 0xff),
		B: uint8(b * a / 0xff),
		A: uint8(a),
	}, nil
}

// cssColor formats c for SVG attributes, returning the opacity separately.
func cssColor(c color.RGBA) (rgb string, opacity float64) {
	if c.A == 0 {
		return "none", 0
	}
	r := uint32(c.R) * 0xff / uint32(c.A)
	g := uint32(c.G) * 0xff / uint32(c.A)
	b := uint32(c.B) * 0xff / uint32(c.A)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), float64(c.A) / 0xff
}
