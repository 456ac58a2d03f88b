//go:build unix

package termtest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ptyWriteRetryInterval is how long Write backs off while the PTY's input
// queue is full.
const ptyWriteRetryInterval = time.Millisecond

// ptyOps collects platform and system call operations used by ptyReader.
// Using an ops struct allows tests to inject mocks per-instance instead of
// mutating package globals.
type ptyOps struct {
	setNonblock func(int, bool) error
	read        func(int, []byte) (int, error)
	write       func(int, []byte) (int, error)
	initPoller  func(*ptyReader) error
	waitForRead func(*ptyReader) error
	pipe        func([]int) error
	closeFD     func(int) error

	// platform-specific primitives used by the poller implementations

	//lint:ignore U1000 Unused depending on env.
	kqueue func() (int, error)
	//lint:ignore U1000 Unused depending on env.
	kevent func(int, []ptyOpsUnixKevent_t, []ptyOpsUnixKevent_t, *unix.Timespec) (int, error)

	//lint:ignore U1000 Unused depending on env.
	epollCreate1 func(int) (int, error)
	//lint:ignore U1000 Unused depending on env.
	epollCtl func(int, int, int, *ptyOpsEpollEvent_t) error
	//lint:ignore U1000 Unused depending on env.
	epollWait func(int, []ptyOpsEpollEvent_t, int) (int, error)
}

func newPTYOps() *ptyOps {
	x := ptyOps{
		setNonblock: syscall.SetNonblock,
		read:        syscall.Read,
		write:       syscall.Write,
		initPoller:  func(r *ptyReader) error { return r.initPoller() },
		waitForRead: func(r *ptyReader) error { return r.waitForRead() },
		pipe:        unix.Pipe,
		closeFD:     unix.Close,
	}
	x.init()
	return &x
}

// ptyReader reads the PTY master without blocking in read(2), waiting in a
// poller instead, which a write to the wake pipe interrupts. That is what
// lets a Console stop its reader, then really close the master: a file with
// a read in flight is not released until that read returns, so the slave
// would never see the hangup.
type ptyReader struct {
	file      *os.File
	fd        int
	pollFD    int
	wakeR     int
	wakeW     int
	closed    bool
	mu        sync.Mutex
	closeOnce sync.Once
	ops       *ptyOps
}

func newPTYReader(file *os.File) *ptyReader {
	return &ptyReader{
		file:   file,
		fd:     -1,
		pollFD: -1,
		wakeR:  -1,
		wakeW:  -1,
		ops:    newPTYOps(),
	}
}

func (r *ptyReader) Open() error {
	if r.file == nil {
		return fmt.Errorf("ptyReader has no file")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// WARNING: os.File.Fd puts the descriptor into blocking mode, so it is
	// called before, and never after, setting non-blocking mode
	r.fd = int(r.file.Fd())

	if err := r.ops.setNonblock(r.fd, true); err != nil {
		return fmt.Errorf("failed to set non-blocking mode: %w", err)
	}
	if err := r.ops.initPoller(r); err != nil {
		return fmt.Errorf("failed to init poller: %w", err)
	}
	return nil
}

// Stop makes any current and future Read return io.EOF. It does not close
// anything, see Release.
func (r *ptyReader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.wakeW >= 0 {
		_, _ = unix.Write(r.wakeW, []byte("x"))
	}
}

// Release closes the file and the poller. It must only be called once no
// Read is in progress.
func (r *ptyReader) Release() error {
	var err error
	r.closeOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.closed = true
		var errs []error
		if r.file != nil {
			if e := r.file.Close(); e != nil {
				errs = append(errs, e)
			}
			r.file = nil
			r.fd = -1
		}
		if e := r.closePoller(); e != nil {
			errs = append(errs, e)
		}
		err = errors.Join(errs...)
	})
	return err
}

// Close stops then releases the reader.
func (r *ptyReader) Close() error {
	r.Stop()
	return r.Release()
}

func (r *ptyReader) Read(p []byte) (int, error) {
	for {
		r.mu.Lock()
		if r.closed || r.fd < 0 {
			r.mu.Unlock()
			return 0, io.EOF
		}

		n, err := r.ops.read(r.fd, p)
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EINTR) {
				r.mu.Unlock()
				if waitErr := r.wait(); waitErr != nil {
					return 0, waitErr
				}
				continue
			}

			r.mu.Unlock()
			if r.shouldInterpretAsEOF(err) {
				return max(n, 0), io.EOF
			}
			return max(n, 0), err
		}

		// no data, without an error
		if n == 0 {
			r.mu.Unlock()
			if waitErr := r.wait(); waitErr != nil {
				return 0, waitErr
			}
			continue
		}

		r.mu.Unlock()
		return n, nil
	}
}

func (r *ptyReader) wait() error {
	if err := r.ops.waitForRead(r); err != nil {
		r.mu.Lock()
		isClosed := r.closed
		r.mu.Unlock()
		if isClosed {
			return io.EOF
		}
		return err
	}
	return nil
}

// Write writes all of p, backing off while the PTY would block.
func (r *ptyReader) Write(p []byte) (int, error) {
	var written int
	for written < len(p) {
		r.mu.Lock()
		if r.closed || r.fd < 0 {
			r.mu.Unlock()
			return written, io.ErrClosedPipe
		}
		n, err := r.ops.write(r.fd, p[written:])
		r.mu.Unlock()
		if n > 0 {
			written += n
		}
		switch {
		case err == nil:
		case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EWOULDBLOCK):
			time.Sleep(ptyWriteRetryInterval)
		case errors.Is(err, syscall.EINTR):
		default:
			return written, err
		}
	}
	return written, nil
}

// shouldInterpretAsEOF reports whether a read error means the other side of
// the PTY is gone. Both Linux and Darwin report EIO once the slave has no
// open descriptors.
func (r *ptyReader) shouldInterpretAsEOF(err error) bool {
	return errors.Is(err, syscall.EIO)
}
