package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// maxCoord keeps coordinates inside the 26.6 fixed-point range.
const maxCoord = 1 << 20

// RasterSurface renders into an offscreen RGBA canvas, antialiased with the freetype
// rasterizer and x/image font faces.
type RasterSurface struct {
	canvas  *image.RGBA
	rast    *raster.Rasterizer
	painter *raster.RGBAPainter

	fill      color.RGBA
	stroke    color.RGBA
	lineWidth float64
	align     TextAlign
	text      faceCache
	path      path

	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// NewRasterSurface allocates a width x height canvas. fonts may be nil, in which case
// a fresh FontBook is used.
func NewRasterSurface(width, height int, fonts *FontBook) (*RasterSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrInvalidSize, width, height)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	r := raster.NewRasterizer(width, height)
	r.UseNonZeroWinding = true
	s := &RasterSurface{
		canvas:    canvas,
		rast:      r,
		painter:   raster.NewRGBAPainter(canvas),
		fill:      color.RGBA{A: 0xff},
		stroke:    color.RGBA{A: 0xff},
		lineWidth: 1,
		text:      newFaceCache(fonts),
	}
	return s, nil
}

// Image returns the backing canvas.
func (s *RasterSurface) Image() *image.RGBA { return s.canvas }

// EncodePNG writes the canvas as PNG.
func (s *RasterSurface) EncodePNG(w io.Writer) error { return png.Encode(w, s.canvas) }

func (s *RasterSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (s *RasterSurface) Clear() {
	draw.Draw(s.canvas, s.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.path.reset()
}

func (s *RasterSurface) SetFillColor(c string) error {
	parsed, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.fill = parsed
	return nil
}

func (s *RasterSurface) SetStrokeColor(c string) error {
	parsed, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.stroke = parsed
	return nil
}

// SetLineWidth ignores non-positive and non-finite widths, like a canvas.
func (s *RasterSurface) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.lineWidth = w
	}
}

func (s *RasterSurface) FillRect(x, y, w, h float64) {
	s.fillPath(rectPath(x, y, w, h), s.fill)
}

func (s *RasterSurface) StrokeRect(x, y, w, h float64) {
	s.strokePath(rectPath(x, y, w, h), s.stroke)
}

func (s *RasterSurface) BeginPath()                        { s.path.reset() }
func (s *RasterSurface) MoveTo(x, y float64)               { s.path.moveTo(x, y) }
func (s *RasterSurface) LineTo(x, y float64)               { s.path.lineTo(x, y) }
func (s *RasterSurface) Arc(cx, cy, r, start, end float64) { s.path.arc(cx, cy, r, start, end) }
func (s *RasterSurface) ClosePath()                        { s.path.closePath() }
func (s *RasterSurface) Fill()                             { s.fillPath(&s.path, s.fill) }
func (s *RasterSurface) Stroke()                           { s.strokePath(&s.path, s.stroke) }

func (s *RasterSurface) fillPath(p *path, c color.RGBA) {
	if c.A == 0 || !p.finite() {
		return
	}
	s.rast.Clear()
	drawn := false
	for _, sp := range p.subs {
		if len(sp.pts) < 2 {
			continue
		}
		s.rast.Start(toFixed(sp.pts[0]))
		for _, pt := range sp.pts[1:] {
			s.rast.Add1(toFixed(pt))
		}
		s.rast.Add1(toFixed(sp.pts[0]))
		drawn = true
	}
	if drawn {
		s.painter.SetColor(c)
		s.rast.Rasterize(s.painter)
	}
}

func (s *RasterSurface) strokePath(p *path, c color.RGBA) {
	if c.A == 0 || !p.finite() {
		return
	}
	var q raster.Path
	for _, sp := range p.subs {
		if len(sp.pts) < 2 {
			continue
		}
		q.Start(toFixed(sp.pts[0]))
		for _, pt := range sp.pts[1:] {
			q.Add1(toFixed(pt))
		}
		if sp.closed {
			q.Add1(toFixed(sp.pts[0]))
		}
	}
	if len(q) == 0 {
		return
	}
	s.rast.Clear()
	s.rast.AddStroke(q, fixed.Int26_6(math.Round(s.lineWidth*64)), raster.ButtCapper, raster.RoundJoiner)
	s.painter.SetColor(c)
	s.rast.Rasterize(s.painter)
}

// SetFont selects a face for family at size pixels. Unknown families fall back to the
// default family; an invalid size is rejected and the previous face is kept.
func (s *RasterSurface) SetFont(family string, size float64) error {
	err := s.text.setFont(family, size)
	if err != nil && s.text.face != nil && s.Logger != nil {
		s.Logger.Errorf("raster", "font %q at %v: %v", family, size, err)
	}
	if ValidFontSize(size) {
		return nil
	}
	return err
}

func (s *RasterSurface) SetTextAlign(align TextAlign) { s.align = align }

func (s *RasterSurface) MeasureText(text string) float64 {
	return s.text.measure(text)
}

func (s *RasterSurface) FillText(text string, x, y float64) {
	if s.fill.A == 0 || !finite(x, y) {
		return
	}
	drawer := &font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(s.fill),
		Face: s.text.current(),
	}
	x -= AlignOffset(s.align, fixedToFloat(drawer.MeasureString(text)))
	drawer.Dot = toFixed(point{x, y})
	drawer.DrawString(text)
}

func (s *RasterSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || !finite(x, y, w, h) || w <= 0 || h <= 0 {
		return
	}
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	rect := image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
	xdraw.NearestNeighbor.Scale(s.canvas, rect, img, img.Bounds(), xdraw.Over, nil)
}

func toFixed(p point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed1(p.X), Y: toFixed1(p.Y)}
}

func toFixed1(v float64) fixed.Int26_6 {
	v = math.Max(-maxCoord, math.Min(maxCoord, v))
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
