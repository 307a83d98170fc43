package render

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RecorderCharWidth is the advance of one rune per pixel of font size used by
// Recorder.MeasureText.
const RecorderCharWidth = 0.5

// Call is one recorded surface operation.
type Call struct {
	Op   string
	Args []float64
	Str  string
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	b.WriteString("(")
	parts := make([]string, 0, len(c.Args)+1)
	if c.Str != "" {
		parts = append(parts, strconv.Quote(c.Str))
	}
	for _, a := range c.Args {
		parts = append(parts, strconv.FormatFloat(a, 'g', 6, 64))
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	return b.String()
}

// Recorder is a Surface that draws nothing and logs every call. Colors and font sizes
// are validated the same way the real surfaces validate them. Text width is the rune
// count times RecorderCharWidth times the font size.
type Recorder struct {
	Width, Height int
	Calls         []Call

	fontSize float64
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, fontSize: 10}
}

func (r *Recorder) record(op, str string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Str: str, Args: args})
}

// Reset drops recorded calls.
func (r *Recorder) Reset() { r.Calls = nil }

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the calls with the given operation name.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Lines renders the call log one call per line.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }
func (r *Recorder) Clear()           { r.record("Clear", "") }

func (r *Recorder) SetFillColor(c string) error {
	if _, err := ParseColor(c); err != nil {
		return err
	}
	r.record("SetFillColor", c)
	return nil
}

func (r *Recorder) SetStrokeColor(c string) error {
	if _, err := ParseColor(c); err != nil {
		return err
	}
	r.record("SetStrokeColor", c)
	return nil
}

func (r *Recorder) SetLineWidth(w float64)              { r.record("SetLineWidth", "", w) }
func (r *Recorder) FillRect(x, y, w, h float64)         { r.record("FillRect", "", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64)       { r.record("StrokeRect", "", x, y, w, h) }
func (r *Recorder) BeginPath()                          { r.record("BeginPath", "") }
func (r *Recorder) MoveTo(x, y float64)                 { r.record("MoveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64)                 { r.record("LineTo", "", x, y) }
func (r *Recorder) Arc(cx, cy, rad, start, end float64) { r.record("Arc", "", cx, cy, rad, start, end) }
func (r *Recorder) ClosePath()                          { r.record("ClosePath", "") }
func (r *Recorder) Fill()                               { r.record("Fill", "") }
func (r *Recorder) Stroke()                             { r.record("Stroke", "") }

func (r *Recorder) SetFont(family string, size float64) error {
	if !ValidFontSize(size) {
		return fmt.Errorf("%w: font size %v", ErrInvalidSize, size)
	}
	r.fontSize = size
	r.record("SetFont", family, size)
	return nil
}

func (r *Recorder) SetTextAlign(align TextAlign) { r.record("SetTextAlign", align.String()) }

func (r *Recorder) MeasureText(text string) float64 {
	w := float64(utf8.RuneCountInString(text)) * RecorderCharWidth * r.fontSize
	r.record("MeasureText", text, w)
	return w
}

func (r *Recorder) FillText(text string, x, y float64) { r.record("FillText", text, x, y) }

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	var iw, ih float64 = math.NaN(), math.NaN()
	if img != nil {
		iw, ih = float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	}
	r.record("DrawImage", "", x, y, w, h, iw, ih)
}
