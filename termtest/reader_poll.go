//go:build unix && !linux && !darwin

package termtest

import (
	"syscall"

	"golang.org/x/sys/unix"
)

type ptyOpsUnixKevent_t = any
type ptyOpsEpollEvent_t = any

func (x *ptyOps) init() {}

// initPoller creates the wake pipe. There is no poller descriptor, each wait
// polls the pty and the pipe directly.
func (r *ptyReader) initPoller() error {
	var fds [2]int
	if err := r.ops.pipe(fds[:]); err != nil {
		return err
	}
	r.wakeR = fds[0]
	r.wakeW = fds[1]
	return nil
}

// closePoller closes the wake pipe.
func (r *ptyReader) closePoller() error {
	var firstErr error
	for _, fd := range [...]*int{&r.wakeR, &r.wakeW} {
		if *fd < 0 {
			continue
		}
		if err := r.ops.closeFD(*fd); err != nil && firstErr == nil {
			firstErr = err
		}
		*fd = -1
	}
	return firstErr
}

// waitForRead blocks until the pty is readable or the wake pipe is written.
func (r *ptyReader) waitForRead() error {
	fds := []unix.PollFd{
		{Fd: int32(r.fd), Events: unix.POLLIN},
		{Fd: int32(r.wakeR), Events: unix.POLLIN},
	}
	if _, err := unix.Poll(fds, -1); err != nil {
		if err == syscall.EINTR {
			return nil
		}
		return err
	}
	if fds[1].Revents&unix.POLLIN != 0 {
		var buf [128]byte
		_, _ = r.ops.read(r.wakeR, buf[:])
	}
	return nil
}
