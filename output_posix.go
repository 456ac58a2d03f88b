//go:build unix

package linedit

import (
	"errors"
	"syscall"
	"time"
)

// PosixWriter is a Writer implementation for POSIX environment, writing
// directly to a file descriptor (stderr by default, keeping stdout free for
// the accepted line).
type PosixWriter struct {
	VT100Writer
	fd    int
	write func(int, []byte) (int, error)
}

// Flush to flush buffer.
func (w *PosixWriter) Flush() error {
	defer func() { w.buffer = w.buffer[:0] }()
	data := w.buffer
	for len(data) > 0 {
		n, err := w.write(w.fd, data)
		if n > 0 {
			data = data[n:]
		}
		if err != nil {
			// the fd may share its file description with a non-blocking input
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
				time.Sleep(time.Millisecond)
				continue
			}
			return err
		}
	}
	return nil
}

var _ Writer = &PosixWriter{}

// NewStderrWriter returns Writer object to write to stderr.
func NewStderrWriter() *PosixWriter {
	return NewFDWriter(syscall.Stderr)
}

// NewFDWriter returns a Writer for the given file descriptor.
func NewFDWriter(fd int) *PosixWriter {
	return &PosixWriter{
		fd:    fd,
		write: syscall.Write,
	}
}
