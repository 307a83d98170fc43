//go:build unix

package system

import (
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStdIO appends stdout and stderr to the file at path. An empty path is a
// no-op.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Duplicate the descriptor so panics and output from other goroutines land in
	// the file too.
	if err := unix.Dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return err
	}
	return unix.Dup2(int(f.Fd()), int(os.Stderr.Fd()))
}
