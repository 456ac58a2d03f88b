//go:build linux

package termtest

import (
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLinuxPoller_ErrorBranches(t *testing.T) {
	t.Run("initPoller EpollCreate1 error", func(t *testing.T) {
		sentinel := errors.New("epoll create failed")
		ops := newPTYOps()
		ops.epollCreate1 = func(int) (int, error) { return -1, sentinel }
		r := &ptyReader{fd: 123, pollFD: -1, wakeR: -1, wakeW: -1, ops: ops}
		require.ErrorIs(t, r.initPoller(), sentinel)
	})

	t.Run("initPoller pipe error closes epoll fd", func(t *testing.T) {
		sentinel := errors.New("pipe failed")
		ops := newPTYOps()
		ops.epollCreate1 = func(int) (int, error) { return 42, nil }
		ops.pipe = func([]int) error { return sentinel }
		var closed []int
		ops.closeFD = func(fd int) error {
			closed = append(closed, fd)
			return nil
		}
		r := &ptyReader{fd: 123, pollFD: -1, wakeR: -1, wakeW: -1, ops: ops}
		require.ErrorIs(t, r.initPoller(), sentinel)
		assert.Equal(t, []int{42}, closed)
		assert.Equal(t, -1, r.pollFD)
	})

	t.Run("initPoller EpollCtl error closes everything", func(t *testing.T) {
		sentinel := errors.New("epoll ctl failed")
		ops := newPTYOps()
		ops.epollCreate1 = func(int) (int, error) { return 42, nil }
		ops.pipe = func(fds []int) error {
			fds[0], fds[1] = 43, 44
			return nil
		}
		ops.epollCtl = func(int, int, int, *unix.EpollEvent) error { return sentinel }
		var closed []int
		ops.closeFD = func(fd int) error {
			closed = append(closed, fd)
			return nil
		}
		r := &ptyReader{fd: 123, pollFD: -1, wakeR: -1, wakeW: -1, ops: ops}
		require.ErrorIs(t, r.initPoller(), sentinel)
		assert.Equal(t, []int{42, 43, 44}, closed)
		assert.Equal(t, -1, r.wakeR)
		assert.Equal(t, -1, r.wakeW)
	})

	t.Run("waitForRead EINTR is not an error", func(t *testing.T) {
		ops := newPTYOps()
		ops.epollWait = func(int, []unix.EpollEvent, int) (int, error) { return -1, syscall.EINTR }
		r := &ptyReader{fd: 123, pollFD: 42, wakeR: 43, wakeW: 44, ops: ops}
		require.NoError(t, r.waitForRead())
	})

	t.Run("waitForRead hangup without data is EOF", func(t *testing.T) {
		ops := newPTYOps()
		ops.epollWait = func(_ int, events []unix.EpollEvent, _ int) (int, error) {
			events[0] = unix.EpollEvent{Events: unix.EPOLLHUP, Fd: 123}
			return 1, nil
		}
		r := &ptyReader{fd: 123, pollFD: 42, wakeR: 43, wakeW: 44, ops: ops}
		require.ErrorIs(t, r.waitForRead(), io.EOF)
	})

	t.Run("waitForRead hangup with data is readable", func(t *testing.T) {
		ops := newPTYOps()
		ops.epollWait = func(_ int, events []unix.EpollEvent, _ int) (int, error) {
			events[0] = unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLHUP, Fd: 123}
			return 1, nil
		}
		r := &ptyReader{fd: 123, pollFD: 42, wakeR: 43, wakeW: 44, ops: ops}
		require.NoError(t, r.waitForRead())
	})

	t.Run("waitForRead drains the wake pipe", func(t *testing.T) {
		ops := newPTYOps()
		ops.epollWait = func(_ int, events []unix.EpollEvent, _ int) (int, error) {
			events[0] = unix.EpollEvent{Events: unix.EPOLLIN, Fd: 43}
			return 1, nil
		}
		var drained int
		ops.read = func(fd int, p []byte) (int, error) {
			drained = fd
			return 1, nil
		}
		r := &ptyReader{fd: 123, pollFD: 42, wakeR: 43, wakeW: 44, ops: ops}
		require.NoError(t, r.waitForRead())
		assert.Equal(t, 43, drained)
	})
}
