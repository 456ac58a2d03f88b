//go:build unix

package term

import (
	"errors"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// ErrReleased is returned by RawMode.Restore after the mode was already restored.
var ErrReleased = errors.New("term: raw mode already released")

// RawMode is a scoped acquisition of raw (non-canonical, non-echoing)
// terminal input on a single file descriptor. Restore must be called on every
// exit path, typically via defer, and is safe to call more than once.
type RawMode struct {
	mu       sync.Mutex
	fd       int
	saved    unix.Termios
	released bool
	ops      *termOps
}

type termOps struct {
	tcgetattr func(uintptr) (*unix.Termios, error)
	tcsetattr func(uintptr, uintptr, *unix.Termios) error
}

func newTermOps() *termOps {
	return &termOps{
		tcgetattr: termios.Tcgetattr,
		tcsetattr: termios.Tcsetattr,
	}
}

// EnableRaw saves the current attributes of fd, then switches it to raw mode.
func EnableRaw(fd int) (*RawMode, error) {
	return enableRaw(fd, newTermOps())
}

func enableRaw(fd int, ops *termOps) (*RawMode, error) {
	orig, err := ops.tcgetattr(uintptr(fd))
	if err != nil {
		return nil, err
	}
	m := &RawMode{fd: fd, saved: *orig, ops: ops}

	n := *orig
	makeRaw(&n)
	if err := ops.tcsetattr(uintptr(fd), termios.TCSANOW, &n); err != nil {
		return nil, err
	}
	return m, nil
}

func makeRaw(n *unix.Termios) {
	n.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	n.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG | unix.ECHONL
	n.Cflag &^= unix.CSIZE | unix.PARENB
	n.Cflag |= unix.CS8
	n.Cc[unix.VMIN] = 1
	n.Cc[unix.VTIME] = 0
}

// FD returns the guarded file descriptor.
func (m *RawMode) FD() int { return m.fd }

// Saved returns a copy of the attributes captured before raw mode was enabled.
func (m *RawMode) Saved() unix.Termios {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// Restore puts back the attributes saved by EnableRaw.
func (m *RawMode) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return ErrReleased
	}
	m.released = true
	saved := m.saved
	return m.ops.tcsetattr(uintptr(m.fd), termios.TCSANOW, &saved)
}
