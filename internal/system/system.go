// Package system integrates the framebuffer display with the Linux console: console
// graphics mode, cursor visibility, evdev key actions and stdio redirection.
package system

import "errors"

// ErrUnsupported is returned by console operations on platforms without a Linux VT.
var ErrUnsupported = errors.New("console control not supported on this platform")

// Logger is the logging contract shared with the app package.
type Logger interface {
	Infof(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}

// consolePaths are tried in order: the active VT, then tty0.
var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// EnterGraphics switches the console to graphics mode and hides the cursor. The
// returned function restores text mode and the cursor. Failures are logged and do not
// prevent drawing, since the framebuffer works either way.
func EnterGraphics(l Logger) (restore func()) {
	logResult(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
	logResult(l, HideCursor(), "cursor hidden", "hide cursor failed")
	return func() {
		logResult(l, ShowCursor(), "cursor shown", "show cursor failed")
		logResult(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
	}
}

func logResult(l Logger, err error, ok, failed string) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
