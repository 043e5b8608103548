package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of our output went
// away, e.g. `bsprimer search ... | head`.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}

// Quiet drops broken-pipe errors and returns any other error unchanged.
func Quiet(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
