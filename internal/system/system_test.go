package system

import (
	"context"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

type recordingLogger struct {
	infos, errs []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.infos = append(l.infos, component)
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.errs = append(l.errs, component)
}

func TestLogResult(t *testing.T) {
	l := &recordingLogger{}
	logResult(l, nil, "ok", "failed")
	logResult(l, errors.New("x"), "ok", "failed")
	logResult(nil, errors.New("x"), "ok", "failed")
	if len(l.infos) != 1 || len(l.errs) != 1 || l.infos[0] != "tty" {
		t.Errorf("infos=%v errs=%v", l.infos, l.errs)
	}
}

func TestEnterGraphicsAlwaysReturnsRestore(t *testing.T) {
	l := &recordingLogger{}
	restore := EnterGraphics(l)
	if restore == nil {
		t.Fatal("nil restore func")
	}
	restore()
	// Two steps on entry and two on restore, each logged once whether or not a
	// console is present.
	if got := len(l.infos) + len(l.errs); got != 4 {
		t.Errorf("logged %d results, want 4", got)
	}
}

func TestRedirectStdIOEmptyPath(t *testing.T) {
	if err := RedirectStdIO(""); err != nil {
		t.Errorf("RedirectStdIO(\"\") = %v", err)
	}
}

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, inputEventSize(tvSize))
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecodeKeyPresses(t *testing.T) {
	const evSyn, evAbs = 0x00, 0x03
	for _, tvSize := range []int{8, 16} {
		tests := []struct {
			name string
			buf  []byte
			want []uint16
		}{
			{"empty", nil, nil},
			{"press", inputEvent(tvSize, evKey, KeyF4, 1), []uint16{KeyF4}},
			{"release", inputEvent(tvSize, evKey, KeyF4, 0), nil},
			{"autorepeat", inputEvent(tvSize, evKey, KeyF4, 2), nil},
			{"other type", inputEvent(tvSize, evAbs, KeyF4, 1), nil},
			{"press then sync", append(inputEvent(tvSize, evKey, KeyR, 1), inputEvent(tvSize, evSyn, 0, 0)...), []uint16{KeyR}},
			{"two presses", append(inputEvent(tvSize, evKey, KeyR, 1), inputEvent(tvSize, evKey, KeyF5, 1)...), []uint16{KeyR, KeyF5}},
			{"partial record", append(inputEvent(tvSize, evKey, KeyR, 1), inputEvent(tvSize, evKey, KeyF4, 1)[:tvSize+4]...), []uint16{KeyR}},
		}
		for _, tt := range tests {
			got := decodeKeyPresses(tt.buf, tvSize)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tv=%d %s: got %v, want %v", tvSize, tt.name, got, tt.want)
			}
		}
	}
}

func TestKeyActionsDispatch(t *testing.T) {
	var exits, reloads int
	actions := KeyActions{
		KeyF4: func() { exits++ },
		KeyR:  func() { reloads++ },
		KeyF5: nil,
	}
	if n := actions.dispatch([]uint16{KeyR, 30, KeyF5, KeyR, KeyF4}); n != 3 {
		t.Errorf("dispatched %d actions, want 3", n)
	}
	if exits != 1 || reloads != 2 {
		t.Errorf("exits=%d reloads=%d", exits, reloads)
	}
}

func TestWatchKeysReturnsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	WatchKeys(ctx, &recordingLogger{}, nil)
	WatchKeys(ctx, nil, KeyActions{KeyF4: func() {}})
}
