package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/drawstring/internal/state"
)

// Screen produces display frames from a state snapshot.
type Screen interface {
	Frame(s state.State) (*image.RGBA, error)
}

// FBDisplay shows frames on a Linux framebuffer device.
type FBDisplay struct {
	Device string

	fbDev       *fb.Device
	running     atomic.Bool
	current     Screen
	lastVersion uint64
	drawn       bool
	Logger      interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func NewFBDisplay(device string) *FBDisplay {
	if device == "" {
		device = "/dev/fb0"
	}
	return &FBDisplay{Device: device}
}

func (d *FBDisplay) Start(ctx context.Context) error {
	dev, err := fb.Open(d.Device)
	if err != nil {
		return err
	}
	d.fbDev = dev
	if d.Logger != nil {
		bounds := dev.Bounds()
		d.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", d.Device, bounds.Dx(), bounds.Dy())
	}
	d.running.Store(true)
	return nil
}

func (d *FBDisplay) Stop() error {
	d.running.Store(false)
	if d.fbDev != nil {
		d.fbDev.Close()
		d.fbDev = nil
	}
	return nil
}

// SetScreen sets the screen that produces frames and forces the next redraw.
func (d *FBDisplay) SetScreen(screen Screen) {
	d.current = screen
	d.drawn = false
}

// RedrawWithState draws a frame for snap unless the same version is already shown.
func (d *FBDisplay) RedrawWithState(snap state.State) {
	if !d.running.Load() || d.current == nil || d.fbDev == nil {
		return
	}
	if d.drawn && snap.Version == d.lastVersion {
		return
	}
	frame, err := d.current.Frame(snap)
	if err != nil {
		if d.Logger != nil {
			d.Logger.Errorf("fb", "frame for version %d: %v", snap.Version, err)
		}
		return
	}
	if err := blitToFB(d.fbDev, frame); err != nil && d.Logger != nil {
		d.Logger.Errorf("fb", "blit: %v", err)
	}
	d.drawn = true
	d.lastVersion = snap.Version
	if d.Logger != nil {
		d.Logger.Infof("fb", "redraw done, version=%d panels=%d", snap.Version, len(snap.Panels))
	}
}

// RunLoop polls the store every FrameInterval until the context is done.
func (d *FBDisplay) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.RedrawWithState(store.Snapshot())
		}
	}
}

// blitToFB copies frame to the device, scaled by fitFrame.
func blitToFB(dev *fb.Device, frame *image.RGBA) error {
	if dev == nil {
		return errors.New("framebuffer not open")
	}
	if frame == nil || frame.Bounds().Empty() {
		return errors.New("empty frame")
	}
	out := fitFrame(dev.Bounds(), frame)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dev.Set(x, y, out.RGBAAt(x, y))
		}
	}
	return nil
}

// fitFrame scales frame into area with nearest-neighbor sampling, preserving aspect
// ratio and letterboxing with black. The result is opaque; the framebuffer has no
// alpha.
func fitFrame(area image.Rectangle, frame *image.RGBA) *image.RGBA {
	out := image.NewRGBA(area)
	xdraw.Draw(out, area, image.NewUniform(color.RGBA{A: 0xFF}), image.Point{}, xdraw.Src)
	dst := Letterbox(area, frame.Bounds().Dx(), frame.Bounds().Dy())
	if !dst.Empty() {
		xdraw.NearestNeighbor.Scale(out, dst, frame, frame.Bounds(), xdraw.Over, nil)
	}
	return out
}

// Letterbox returns the largest rectangle with the aspect ratio w:h centered in area.
func Letterbox(area image.Rectangle, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 || area.Empty() {
		return image.Rectangle{}
	}
	aw, ah := area.Dx(), area.Dy()
	dw, dh := aw, aw*h/w
	if dh > ah {
		dw, dh = ah*w/h, ah
	}
	x0 := area.Min.X + (aw-dw)/2
	y0 := area.Min.Y + (ah-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}
