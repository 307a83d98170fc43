//go:build !linux

package system

import "context"

// WatchKeys needs evdev; elsewhere it logs and returns.
func WatchKeys(ctx context.Context, logger Logger, actions KeyActions) {
	if logger != nil && len(actions) > 0 {
		logger.Infof("input", "key actions not supported on this platform")
	}
}
