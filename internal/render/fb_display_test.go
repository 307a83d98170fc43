package render

import (
	"image"
	"image/color"
	"testing"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		area image.Rectangle
		w, h int
		want image.Rectangle
	}{
		{image.Rect(0, 0, 800, 480), 240, 240, image.Rect(160, 0, 640, 480)},
		{image.Rect(0, 0, 480, 800), 240, 120, image.Rect(0, 280, 480, 520)},
		{image.Rect(0, 0, 100, 100), 100, 100, image.Rect(0, 0, 100, 100)},
		{image.Rect(0, 0, 100, 100), 0, 10, image.Rectangle{}},
		{image.Rectangle{}, 10, 10, image.Rectangle{}},
	}
	for _, tt := range tests {
		if got := Letterbox(tt.area, tt.w, tt.h); got != tt.want {
			t.Errorf("Letterbox(%v, %d, %d) = %v, want %v", tt.area, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRedrawWithoutDeviceIsNoop(t *testing.T) {
	d := NewFBDisplay("")
	if d.Device != "/dev/fb0" {
		t.Errorf("default device = %q", d.Device)
	}
	if err := blitToFB(nil, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("blit without device succeeded")
	}
}

func TestFitFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 2))
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			frame.SetRGBA(x, y, red)
		}
	}
	// Half-transparent white, premultiplied.
	frame.SetRGBA(3, 1, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80})

	out := fitFrame(image.Rect(0, 0, 8, 8), frame)
	black := color.RGBA{A: 0xff}
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{4, 0, black},
		{4, 7, black},
		{0, 2, red},
		{5, 3, red},
		{7, 5, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
	}
	for _, c := range checks {
		if got := out.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
	if out.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Errorf("bounds = %v", out.Bounds())
	}
}
