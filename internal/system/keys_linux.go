//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	evdevGlob     = "/dev/input/event*"
	pollTimeoutMs = 250
	// readEvents is how many input_event records one read can return.
	readEvents = 64
)

// WatchKeys runs actions for key presses on every evdev device until ctx is done.
// It returns immediately; each device is read on its own goroutine. Without devices
// it logs and returns.
func WatchKeys(ctx context.Context, logger Logger, actions KeyActions) {
	if len(actions) == 0 {
		return
	}
	if logger == nil {
		logger = nopLogger{}
	}
	paths, err := filepath.Glob(evdevGlob)
	if err != nil || len(paths) == 0 {
		logger.Infof("input", "no evdev devices, %d key action(s) disabled", len(actions))
		return
	}
	tvSize := binary.Size(unix.Timeval{})
	for _, p := range paths {
		go watchDevice(ctx, logger, p, tvSize, actions)
	}
}

func watchDevice(ctx context.Context, logger Logger, path string, tvSize int, actions KeyActions) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	// Reads of whole records only; evdev never splits an event across reads.
	buf := make([]byte, readEvents*inputEventSize(tvSize))
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, pollTimeoutMs); err != nil {
			if err == unix.EINTR {
				continue
			}
			logger.Errorf("input", "poll %s: %v", path, err)
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			// Unplugged devices end up here.
			logger.Infof("input", "%s closed: %v", path, err)
			return
		}
		if ran := actions.dispatch(decodeKeyPresses(buf[:n], tvSize)); ran > 0 {
			logger.Infof("input", "%s: %d key action(s)", path, ran)
		}
	}
}
