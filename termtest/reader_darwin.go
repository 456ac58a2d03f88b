//go:build darwin

package termtest

import (
	"syscall"

	"golang.org/x/sys/unix"
)

type ptyOpsUnixKevent_t = unix.Kevent_t
type ptyOpsEpollEvent_t = any

func (x *ptyOps) init() {
	x.kqueue = unix.Kqueue
	x.kevent = unix.Kevent
}

// initPoller initializes a kqueue poller watching the pty and a wake pipe.
func (r *ptyReader) initPoller() error {
	kq, err := r.ops.kqueue()
	if err != nil {
		return err
	}
	r.pollFD = kq

	var fds [2]int
	if err := r.ops.pipe(fds[:]); err != nil {
		_ = r.ops.closeFD(r.pollFD)
		r.pollFD = -1
		return err
	}
	r.wakeR = fds[0]
	r.wakeW = fds[1]

	events := []unix.Kevent_t{
		{
			Ident:  uint64(r.fd),
			Filter: unix.EVFILT_READ,
			Flags:  unix.EV_ADD | unix.EV_ENABLE,
		},
		{
			Ident:  uint64(r.wakeR),
			Filter: unix.EVFILT_READ,
			Flags:  unix.EV_ADD | unix.EV_ENABLE,
		},
	}
	if _, err := r.ops.kevent(r.pollFD, events, nil, nil); err != nil {
		_ = r.closePoller()
		return err
	}
	return nil
}

// closePoller closes the kqueue fd and the wake pipe.
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
// On Darwin a hangup is reported as readable, read then returning EIO.
func (r *ptyReader) waitForRead() error {
	var events [2]unix.Kevent_t
	n, err := r.ops.kevent(r.pollFD, nil, events[:], nil)
	if err != nil {
		if err == syscall.EINTR {
			return nil
		}
		return err
	}
	for i := 0; i < n; i++ {
		if int(events[i].Ident) == r.wakeR {
			var buf [128]byte
			_, _ = r.ops.read(r.wakeR, buf[:])
		}
	}
	return nil
}
