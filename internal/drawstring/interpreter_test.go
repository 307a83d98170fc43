package drawstring

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rook-computer/drawstring/internal/render"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder(100, 100)
	in, err := New(rec)
	if err != nil {
		t.Fatal(err)
	}
	return in, rec
}

var resetOps = []string{"Clear", "SetFont", "SetTextAlign", "SetLineWidth"}

func TestNewRequiresSurface(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("New(nil) error = %v, want ErrNoSurface", err)
	}
}

func TestRenderFillThenCircle(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("fill,white\ncircle,50,50,20,red")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	want := append(append([]string{}, resetOps...),
		"SetFillColor", "FillRect",
		"BeginPath", "SetStrokeColor", "Arc", "Stroke")
	if got := rec.Ops(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if fill := rec.Find("SetFillColor")[0]; fill.Str != "#FFFFFF" {
		t.Errorf("fill color = %q", fill.Str)
	}
	if rect := rec.Find("FillRect")[0]; !reflect.DeepEqual(rect.Args, []float64{0, 0, 100, 100}) {
		t.Errorf("fill rect = %v", rect.Args)
	}
	if stroke := rec.Find("SetStrokeColor")[0]; stroke.Str != "#FF0000" {
		t.Errorf("stroke color = %q", stroke.Str)
	}
	arc := rec.Find("Arc")[0]
	if !reflect.DeepEqual(arc.Args, []float64{50, 50, 20, 0, 2 * math.Pi}) {
		t.Errorf("arc = %v", arc.Args)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	script := "fill,white\nfont,f\nfsize,20\nfalign,c\nfbcolor,yellow\ntext,abc,50,50\nsarc,50,50,30,0,180,2,red,blue,12\ntextf,fit me,0,0,60,30"
	in, rec := newTestInterpreter(t)
	in.Render(script)
	first := rec.Lines()
	rec.Reset()
	in.Render(script)
	if second := rec.Lines(); !reflect.DeepEqual(first, second) {
		t.Errorf("second render differs:\n%v\n%v", first, second)
	}
}

func TestStatePersistsWithinRenderAndResetsBetween(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("font,f\nfsize,30\nfcolor,red\nfbcolor,blue\nfalign,r\ntext,x,10,10")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	want := State{FontFamily: "monospace", FontSize: 30, FontColor: "#FF0000", BackColor: "#0000FF", Align: render.TextAlignRight}
	if got := in.State(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
	fonts := rec.Find("SetFont")
	if last := fonts[len(fonts)-1]; last.Str != "monospace" || last.Args[0] != 30 {
		t.Errorf("last SetFont = %v", last)
	}

	rec.Reset()
	in.Render("")
	if got := in.State(); got != DefaultState() {
		t.Errorf("state after empty render = %+v", got)
	}
	if got := rec.Find("SetFont")[0]; got.Str != render.DefaultFamily || got.Args[0] != 16 {
		t.Errorf("reset SetFont = %v", got)
	}
}

func TestTextCenteredRestoresAlignment(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("falign,r\ntextc,A,10,10\ntext,B,10,10")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	align := ""
	got := map[string]string{}
	for _, c := range rec.Calls {
		switch c.Op {
		case "SetTextAlign":
			align = c.Str
		case "FillText":
			got[c.Str] = align
		}
	}
	if got["A"] != "center" || got["B"] != "right" {
		t.Errorf("alignment per text = %v", got)
	}
	if in.State().Align != render.TextAlignRight {
		t.Errorf("state alignment = %v", in.State().Align)
	}
}

func TestTextBackground(t *testing.T) {
	tests := []struct {
		name   string
		script string
		rect   []float64
	}{
		// Recorder width: 2 runes * 0.5 * 16px.
		{"left", "fbcolor,yellow\ntext,AB,10,20", []float64{10, 8, 16, 16}},
		{"center", "fbcolor,yellow\nfalign,c\ntext,AB,10,20", []float64{2, 8, 16, 16}},
		{"right", "fbcolor,yellow\nfalign,r\ntext,AB,10,20", []float64{-6, 8, 16, 16}},
		{"textc", "fbcolor,yellow\ntextc,AB,10,20", []float64{2, 8, 16, 16}},
		{"disabled again", "fbcolor,yellow\nfbcolor\ntext,AB,10,20", nil},
		{"transparent", "fbcolor,transparent\ntext,AB,10,20", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rec := newTestInterpreter(t)
			if res := in.Render(tt.script); !res.OK() {
				t.Fatal(res.Err())
			}
			rects := rec.Find("FillRect")
			if tt.rect == nil {
				if len(rects) != 0 {
					t.Errorf("unexpected background %v", rects)
				}
				return
			}
			if len(rects) != 1 || !reflect.DeepEqual(rects[0].Args, tt.rect) {
				t.Errorf("background = %v, want %v", rects, tt.rect)
			}
			if text := rec.Find("FillText"); len(text) != 1 || !reflect.DeepEqual(text[0].Args, []float64{10, 20}) {
				t.Errorf("text = %v", text)
			}
		})
	}
}

func TestTextFitted(t *testing.T) {
	in, rec := newTestInterpreter(t)
	// 10 runes: width is 5*size, so a 50px box fits at size 10.
	res := in.Render("fsize,12\ntextf,0123456789,0,0,50,40")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	fonts := rec.Find("SetFont")
	// reset, fsize, fitting 40..10, restore
	if n := len(fonts); n != 2+31+1 {
		t.Fatalf("SetFont calls = %d", n)
	}
	if fitted := fonts[len(fonts)-2]; fitted.Args[0] != 10 {
		t.Errorf("fitted size = %v", fitted.Args[0])
	}
	if restored := fonts[len(fonts)-1]; restored.Args[0] != 12 {
		t.Errorf("restored size = %v", restored.Args[0])
	}
	text := rec.Find("FillText")[0]
	// Centered: x = 0 + (50-50)/2, y = 0 + 20 + 10*0.35.
	if text.Args[0] != 0 || math.Abs(text.Args[1]-23.5) > 1e-9 {
		t.Errorf("text position = %v", text.Args)
	}
	if in.State().FontSize != 12 {
		t.Errorf("state font size = %v", in.State().FontSize)
	}
}

func TestTextFittedFloorsAtOne(t *testing.T) {
	in, rec := newTestInterpreter(t)
	if res := in.Render("textf,wide text,0,0,1,5"); !res.OK() {
		t.Fatal(res.Err())
	}
	fonts := rec.Find("SetFont")
	if fitted := fonts[len(fonts)-2]; fitted.Args[0] != 1 {
		t.Errorf("fitted size = %v, want 1", fitted.Args[0])
	}
}

func TestUnknownCommandIsSkipped(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("foobar,1,2,3")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Name != "foobar" || res.Executed != 0 {
		t.Errorf("result = %+v", res)
	}
	if got := rec.Ops(); !reflect.DeepEqual(got, resetOps) {
		t.Errorf("ops = %v", got)
	}
	if in.State() != DefaultState() {
		t.Errorf("state changed: %+v", in.State())
	}
}

func TestCommentOnlyScriptClears(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("// nothing here\n\n   \n// still nothing")
	if !res.OK() || res.Instructions != 0 {
		t.Fatalf("result = %+v", res)
	}
	if got := rec.Ops(); !reflect.DeepEqual(got, resetOps) {
		t.Errorf("ops = %v", got)
	}
}

func TestErrorsAreCollectedAndRenderContinues(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("fill\nfcolor,notacolor\ncircle,1,1,1,red\nfsize,abc\nfsize,-3")
	if res.Executed != 5 || len(res.Errors) != 4 {
		t.Fatalf("result = %+v", res)
	}
	wants := []struct {
		line int
		err  error
	}{
		{1, ErrMissingParameter},
		{2, render.ErrInvalidColor},
		{4, ErrInvalidFontSize},
		{5, ErrInvalidFontSize},
	}
	for i, w := range wants {
		e := res.Errors[i]
		if e.Line != w.line || !errors.Is(e, w.err) {
			t.Errorf("error %d = %v, want line %d %v", i, e, w.line, w.err)
		}
	}
	if !errors.Is(res.Err(), render.ErrInvalidColor) {
		t.Errorf("joined error = %v", res.Err())
	}
	if len(rec.Find("Stroke")) != 1 {
		t.Error("circle after failures was not drawn")
	}
	if st := in.State(); st.FontColor != defaultFontColor || st.FontSize != defaultFontSize {
		t.Errorf("failed instructions changed state: %+v", st)
	}
}

type panickySurface struct {
	*render.Recorder
}

func (panickySurface) FillRect(x, y, w, h float64) { panic("fill rect exploded") }

type testLogger struct {
	errors []string
}

func (l *testLogger) Infof(component, format string, args ...interface{}) {}
func (l *testLogger) Errorf(component, format string, args ...interface{}) {
	l.errors = append(l.errors, component+": "+format)
}

func TestPanicIsRecovered(t *testing.T) {
	rec := render.NewRecorder(10, 10)
	in, err := New(panickySurface{rec})
	if err != nil {
		t.Fatal(err)
	}
	log := &testLogger{}
	in.Logger = log
	res := in.Render("fill,red\nline,0,0,1,1,red")
	if len(res.Errors) != 1 || res.Errors[0].Line != 1 || !strings.Contains(res.Errors[0].Error(), "fill rect exploded") {
		t.Fatalf("errors = %v", res.Errors)
	}
	if len(rec.Find("Stroke")) != 1 {
		t.Error("line after panic was not drawn")
	}
	if len(log.errors) != 2 {
		t.Errorf("logged %d errors, want panic and instruction", len(log.errors))
	}
}

func TestMalformedNumbersDegrade(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("line,a,,3\nrect,1,2,3,4")
	// The line has no color; the rect has no color either.
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %v", res.Errors)
	}
	rec.Reset()
	res = in.Render("line,a,,0x10,4.5,red")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	move, line := rec.Find("MoveTo")[0], rec.Find("LineTo")[0]
	if !math.IsNaN(move.Args[0]) || move.Args[1] != 0 {
		t.Errorf("MoveTo = %v", move.Args)
	}
	if line.Args[0] != 16 || line.Args[1] != 4.5 {
		t.Errorf("LineTo = %v", line.Args)
	}
}

func TestArcFillsSliceThenStrokes(t *testing.T) {
	in, rec := newTestInterpreter(t)
	if res := in.Render("arc,50,50,10,0,90,3,red,blue"); !res.OK() {
		t.Fatal(res.Err())
	}
	want := append(append([]string{}, resetOps...),
		"SetStrokeColor", "SetFillColor", "BeginPath", "MoveTo", "Arc", "ClosePath", "Fill",
		"SetLineWidth", "BeginPath", "Arc", "Stroke", "SetLineWidth")
	if got := rec.Ops(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	widths := rec.Find("SetLineWidth")
	if widths[1].Args[0] != 3 || widths[2].Args[0] != 1 {
		t.Errorf("line widths = %v", widths)
	}
	arc := rec.Find("Arc")[1]
	if math.Abs(arc.Args[4]-math.Pi/2) > 1e-12 {
		t.Errorf("end angle = %v", arc.Args[4])
	}
}

func TestArcThicknessDefaultsToOne(t *testing.T) {
	for _, thickness := range []string{"", "0", "-2", "abc"} {
		in, rec := newTestInterpreter(t)
		if res := in.Render("arc,50,50,10,0,90," + thickness + ",red"); !res.OK() {
			t.Fatal(res.Err())
		}
		for _, w := range rec.Find("SetLineWidth") {
			if w.Args[0] != 1 {
				t.Errorf("thickness %q: line width %v", thickness, w.Args[0])
			}
		}
	}
}

func TestQRCode(t *testing.T) {
	in, rec := newTestInterpreter(t)
	res := in.Render("qr,hello,10,12,50\nqrcode,hello,0,0,0\nqr,hello,0,0,10,nope")
	if res.Executed != 3 || len(res.Errors) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if !errors.Is(res.Errors[0], render.ErrInvalidSize) || !errors.Is(res.Errors[1], render.ErrInvalidColor) {
		t.Errorf("errors = %v", res.Errors)
	}
	img := rec.Find("DrawImage")
	if len(img) != 1 {
		t.Fatalf("DrawImage calls = %v", img)
	}
	if args := img[0].Args; args[0] != 10 || args[1] != 12 || args[2] != 50 || args[3] != 50 || !(args[4] > 0) {
		t.Errorf("DrawImage = %v", args)
	}
}
