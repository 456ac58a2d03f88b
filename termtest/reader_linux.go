//go:build linux

package termtest

import (
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

type ptyOpsUnixKevent_t = any
type ptyOpsEpollEvent_t = unix.EpollEvent

func (x *ptyOps) init() {
	x.epollCreate1 = unix.EpollCreate1
	x.epollCtl = unix.EpollCtl
	x.epollWait = unix.EpollWait
}

// initPoller initializes an epoll poller watching the pty and a wake pipe.
func (r *ptyReader) initPoller() error {
	epfd, err := r.ops.epollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return err
	}
	r.pollFD = epfd

	var fds [2]int
	if err := r.ops.pipe(fds[:]); err != nil {
		_ = r.ops.closeFD(r.pollFD)
		r.pollFD = -1
		return err
	}
	r.wakeR = fds[0]
	r.wakeW = fds[1]

	for _, fd := range [...]int{r.fd, r.wakeR} {
		event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
		if err := r.ops.epollCtl(r.pollFD, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
			_ = r.closePoller()
			return err
		}
	}
	return nil
}

// closePoller closes the epoll fd and the wake pipe.
func (r *ptyReader) closePoller() error {
	var firstErr error
	for _, fd := range [...]*int{&r.pollFD, &r.wakeR, &r.wakeW} {
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
// A hangup with nothing left to read is reported as io.EOF, since read would
// otherwise keep reporting EAGAIN on some kernels.
func (r *ptyReader) waitForRead() error {
	var events [2]unix.EpollEvent
	n, err := r.ops.epollWait(r.pollFD, events[:], -1)
	if err != nil {
		if err == syscall.EINTR {
			return nil
		}
		return err
	}
	for i := 0; i < n; i++ {
		switch int(events[i].Fd) {
		case r.fd:
			if events[i].Events&unix.EPOLLIN == 0 && events[i].Events&(unix.EPOLLHUP|unix.EPOLLERR) != 0 {
				return io.EOF
			}
		case r.wakeR:
			var buf [128]byte
			_, _ = r.ops.read(r.wakeR, buf[:])
		}
	}
	return nil
}
