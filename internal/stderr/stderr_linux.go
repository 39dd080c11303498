//go:build linux

package stderr

import (
	"os"

	"golang.org/x/sys/unix"
)

var (
	origFD    = -1
	pipeWrite *os.File
	drained   chan struct{}
)

// Start begins capturing stderr. The program keeps working without the
// capture if it returns an error.
func Start() error {
	if origFD >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := unix.Dup3(int(w.Fd()), int(os.Stderr.Fd()), 0); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origFD = orig
	pipeWrite = w
	drained = make(chan struct{})
	go func() {
		drain(r, drained)
		r.Close()
	}()
	return nil
}

// Stop restores the original stderr and waits for captured output to be
// logged.
func Stop() {
	if origFD < 0 {
		return
	}
	_ = unix.Dup3(origFD, int(os.Stderr.Fd()), 0)
	_ = unix.Close(origFD)
	origFD = -1

	// fd 2 no longer refers to the pipe; closing the last writer ends drain.
	pipeWrite.Close()
	<-drained
}
