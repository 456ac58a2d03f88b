//go:build unix

package linedit

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/joeycumines/go-linedit/term"
	"golang.org/x/sys/unix"
)

// PosixReader is a Reader implementation for the POSIX environment.
type PosixReader struct {
	fd           int
	ownFD        bool
	raw          *term.RawMode
	open         func(string, int, uint32) (int, error)
	close        func(int) error
	read         func(int, []byte) (int, error)
	setNonblock  func(int, bool) error
	enableRaw    func(int) (*term.RawMode, error)
	ioctlWinsize func(int, uint) (*unix.Winsize, error)
}

func (t *PosixReader) initFuncs() {
	if t.open == nil {
		t.open = syscall.Open
	}
	if t.close == nil {
		t.close = syscall.Close
	}
	if t.read == nil {
		t.read = syscall.Read
	}
	if t.setNonblock == nil {
		t.setNonblock = syscall.SetNonblock
	}
	if t.enableRaw == nil {
		t.enableRaw = term.EnableRaw
	}
	if t.ioctlWinsize == nil {
		t.ioctlWinsize = unix.IoctlGetWinsize
	}
}

// Open should be called before starting input. Unless the reader was
// created for a specific file, it opens /dev/tty, falling back to stdin.
func (t *PosixReader) Open() error {
	t.initFuncs()
	if t.fd < 0 {
		in, err := t.open("/dev/tty", syscall.O_RDONLY, 0)
		if os.IsNotExist(err) {
			in = syscall.Stdin
		} else if err != nil {
			return err
		} else {
			t.ownFD = true
		}
		t.fd = in
	}
	// Set NonBlocking mode because if syscall.Read block this goroutine, it cannot receive data from stopCh.
	if err := t.setNonblock(t.fd, true); err != nil {
		return t.abandon(err)
	}
	raw, err := t.enableRaw(t.fd)
	if err != nil {
		return t.abandon(err)
	}
	t.raw = raw
	return nil
}

func (t *PosixReader) abandon(err error) error {
	_ = t.setNonblock(t.fd, false)
	if t.ownFD {
		_ = t.close(t.fd)
		t.ownFD = false
		t.fd = -1
	}
	return err
}

// Close should be called after stopping input. It restores the terminal
// mode saved by Open, and returns the descriptor to blocking mode.
func (t *PosixReader) Close() error {
	t.initFuncs()
	var errs []error
	if t.raw != nil {
		if err := t.raw.Restore(); err != nil && !errors.Is(err, term.ErrReleased) {
			errs = append(errs, err)
		}
		t.raw = nil
	}
	if t.fd >= 0 {
		if err := t.setNonblock(t.fd, false); err != nil {
			errs = append(errs, err)
		}
	}
	if t.ownFD {
		if err := t.close(t.fd); err != nil {
			errs = append(errs, err)
		}
		t.ownFD = false
		t.fd = -1
	}
	return errors.Join(errs...)
}

// Read returns byte array. A hung up terminal reads as io.EOF.
func (t *PosixReader) Read(buff []byte) (int, error) {
	n, err := t.read(t.fd, buff)
	if err != nil {
		if errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
			return 0, io.EOF
		}
		return 0, err
	}
	if n == 0 && len(buff) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// GetWinSize returns WinSize object to represent width and height of terminal.
func (t *PosixReader) GetWinSize() *WinSize {
	ws, err := t.ioctlWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		// If this errors, we simply return the default window size as
		// it's our best guess.
		return &WinSize{
			Row: DefRowCount,
			Col: DefColCount,
		}
	}
	return &WinSize{
		Row: ws.Row,
		Col: ws.Col,
	}
}

var _ Reader = &PosixReader{}

// NewStdinReader returns Reader object to read from the controlling terminal.
func NewStdinReader() *PosixReader {
	return &PosixReader{fd: -1}
}

// NewFileReader returns a Reader for an already open terminal, e.g. the
// slave side of a pty. The file is not closed by the reader.
func NewFileReader(f *os.File) *PosixReader {
	return &PosixReader{fd: int(f.Fd())}
}
