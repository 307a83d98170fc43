package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	svgf "github.com/ajstarks/svgo/float"
)

// svgDecimals is the coordinate precision of drawn elements, matching num.
const svgDecimals = 3

// SVGSurface records drawing calls as SVG elements. Text is measured with the same
// font book as RasterSurface so fitted text lays out identically in both outputs.
type SVGSurface struct {
	width, height int
	body          bytes.Buffer
	canvas        *svgf.SVG

	fill      color.RGBA
	stroke    color.RGBA
	lineWidth float64
	align     TextAlign
	family    string
	size      float64
	text      faceCache
	path      path
}

func NewSVGSurface(width, height int, fonts *FontBook) (*SVGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrInvalidSize, width, height)
	}
	s := &SVGSurface{
		width:     width,
		height:    height,
		fill:      color.RGBA{A: 0xff},
		stroke:    color.RGBA{A: 0xff},
		lineWidth: 1,
		family:    DefaultFamily,
		size:      10,
		text:      newFaceCache(fonts),
	}
	s.canvas = svgf.New(&s.body)
	s.canvas.Decimals = svgDecimals
	return s, nil
}

// Body returns the drawn elements without the enclosing <svg> document, for
// embedding one panel in a larger sheet.
func (s *SVGSurface) Body() []byte { return s.body.Bytes() }

// Encode writes a standalone SVG document.
func (s *SVGSurface) Encode(w io.Writer) error {
	doc := svg.New(w)
	doc.Start(s.width, s.height)
	if _, err := w.Write(s.body.Bytes()); err != nil {
		return err
	}
	doc.End()
	return nil
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

func (s *SVGSurface) Clear() {
	s.body.Reset()
	s.path.reset()
}

func (s *SVGSurface) SetFillColor(c string) error {
	parsed, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.fill = parsed
	return nil
}

func (s *SVGSurface) SetStrokeColor(c string) error {
	parsed, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.stroke = parsed
	return nil
}

func (s *SVGSurface) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.lineWidth = w
	}
}

func (s *SVGSurface) FillRect(x, y, w, h float64)   { s.fillPath(rectPath(x, y, w, h)) }
func (s *SVGSurface) StrokeRect(x, y, w, h float64) { s.strokePath(rectPath(x, y, w, h)) }

func (s *SVGSurface) BeginPath()                        { s.path.reset() }
func (s *SVGSurface) MoveTo(x, y float64)               { s.path.moveTo(x, y) }
func (s *SVGSurface) LineTo(x, y float64)               { s.path.lineTo(x, y) }
func (s *SVGSurface) Arc(cx, cy, r, start, end float64) { s.path.arc(cx, cy, r, start, end) }
func (s *SVGSurface) ClosePath()                        { s.path.closePath() }
func (s *SVGSurface) Fill()                             { s.fillPath(&s.path) }
func (s *SVGSurface) Stroke()                           { s.strokePath(&s.path) }

func (s *SVGSurface) fillPath(p *path) {
	if s.fill.A == 0 || !p.finite() {
		return
	}
	d := pathData(p, true)
	if d == "" {
		return
	}
	rgb, opacity := cssColor(s.fill)
	s.canvas.Path(d, fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", rgb, num(opacity)))
}

func (s *SVGSurface) strokePath(p *path) {
	if s.stroke.A == 0 || !p.finite() {
		return
	}
	d := pathData(p, false)
	if d == "" {
		return
	}
	rgb, opacity := cssColor(s.stroke)
	s.canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;stroke-linejoin:round",
		rgb, num(opacity), num(s.lineWidth)))
}

func (s *SVGSurface) SetFont(family string, size float64) error {
	if err := s.text.setFont(family, size); err != nil && !ValidFontSize(size) {
		return err
	}
	if !s.text.fonts.Has(family) {
		family = DefaultFamily
	}
	s.family, s.size = family, size
	return nil
}

func (s *SVGSurface) SetTextAlign(align TextAlign) { s.align = align }

func (s *SVGSurface) MeasureText(text string) float64 { return s.text.measure(text) }

func (s *SVGSurface) FillText(text string, x, y float64) {
	if s.fill.A == 0 || !finite(x, y) {
		return
	}
	anchor := "start"
	switch s.align {
	case TextAlignCenter:
		anchor = "middle"
	case TextAlignRight:
		anchor = "end"
	}
	rgb, opacity := cssColor(s.fill)
	s.canvas.Text(x, y, text,
		fmt.Sprintf("fill:%s;fill-opacity:%s;font-family:%s;font-size:%spx;text-anchor:%s",
			rgb, num(opacity), s.family, num(s.size), anchor))
}

func (s *SVGSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || !finite(x, y, w, h) || w <= 0 || h <= 0 {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	s.canvas.Image(x, y, int(math.Round(w)), int(math.Round(h)), href,
		"image-rendering:pixelated")
}

// pathData renders p as SVG path data. Filled subpaths are always closed.
func pathData(p *path, fill bool) string {
	var b strings.Builder
	for _, sp := range p.subs {
		if len(sp.pts) < 2 {
			continue
		}
		for i, pt := range sp.pts {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			b.WriteString(num(pt.X))
			b.WriteString(" ")
			b.WriteString(num(pt.Y))
		}
		if fill || sp.closed {
			b.WriteString(" Z ")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// num formats v with at most three decimals.
func num(v float64) string { return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64) }
