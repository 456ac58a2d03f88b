//go:build unix

package termtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/creack/pty"
	"github.com/joeycumines/go-linedit"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

const harnessPromptExitTimeout = 2 * time.Second

var errHarnessPromptExitTimeout = errors.New("timeout waiting for prompt to exit")

// Harness runs a linedit.Prompt in-process, attached to the slave side of a
// PTY, with its Console on the master side.
type Harness struct {
	console *Console
	pts     *os.File // PTY Slave (used by the prompt)
	ptsFD   int
	reader  *ptsReader
	cfg     *harnessConfig

	runStarted atomic.Bool
	doneCh     chan struct{}
	result     string
	err        error

	closeOnce sync.Once
	closeErr  error
}

// ptsReader is the prompt's input, notifying the prompt of Resize calls,
// since the harness is not the pty's foreground process, so gets no SIGWINCH.
type ptsReader struct {
	*linedit.PosixReader
	resizeCh chan struct{}
}

func (r *ptsReader) ResizeNotify() <-chan struct{} {
	return r.resizeCh
}

var _ linedit.ResizeNotifier = (*ptsReader)(nil)

// NewHarness opens a PTY pair. The harness is closed when ctx is done.
func NewHarness(ctx context.Context, opts ...HarnessOption) (*Harness, error) {
	cfg, err := resolveHarnessOptions(opts)
	if err != nil {
		return nil, err
	}

	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptm, &pty.Winsize{Rows: cfg.rows, Cols: cfg.cols}); err != nil {
		_ = ptm.Close()
		_ = pts.Close()
		return nil, fmt.Errorf("failed to set pty size: %w", err)
	}

	console, err := newConsole(ptm, nil, &cfg.termConfig)
	if err != nil {
		_ = ptm.Close()
		_ = pts.Close()
		return nil, err
	}

	h := &Harness{
		console: console,
		pts:     pts,
		// WARNING: os.File.Fd puts the descriptor into blocking mode, so it
		// must not be called again once the prompt is running
		ptsFD: int(pts.Fd()),
		reader: &ptsReader{
			PosixReader: linedit.NewFileReader(pts),
			resizeCh:    make(chan struct{}, 1),
		},
		cfg:    cfg,
		doneCh: make(chan struct{}),
	}
	context.AfterFunc(ctx, func() { _ = h.Close() })

	return h, nil
}

// Console returns the underlying console for interaction.
func (h *Harness) Console() *Console {
	return h.console
}

// Termios returns the current attributes of the PTY slave.
func (h *Harness) Termios() (*unix.Termios, error) {
	return termios.Tcgetattr(uintptr(h.ptsFD))
}

// WinSize returns the size of the PTY, as seen by the prompt.
func (h *Harness) WinSize() *linedit.WinSize {
	return h.reader.GetWinSize()
}

// Run starts a single Input session in the background. It may only be
// called once per harness.
func (h *Harness) Run(prefix string) error {
	if !h.runStarted.CompareAndSwap(false, true) {
		return errors.New("prompt already started")
	}

	opts := append([]linedit.Option{
		linedit.WithReader(h.reader),
		linedit.WithWriter(linedit.NewFDWriter(h.ptsFD)),
	}, h.cfg.promptOptions...)
	p, err := linedit.New(prefix, opts...)
	if err != nil {
		h.err = err
		close(h.doneCh)
		return err
	}

	go func() {
		defer close(h.doneCh)
		h.result, h.err = p.Input()
	}()
	return nil
}

// Wait blocks until the session started by Run ends, returning its result.
func (h *Harness) Wait(ctx context.Context) (string, error) {
	if !h.runStarted.Load() {
		return "", errors.New("prompt not started")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-h.doneCh:
		return h.result, h.err
	}
}

// Resize changes the PTY size, then notifies the prompt.
func (h *Harness) Resize(rows, cols uint16) error {
	if err := pty.Setsize(h.console.ptm, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return err
	}
	select {
	case h.reader.resizeCh <- struct{}{}:
	default:
	}
	return nil
}

// Close closes the PTY master, which ends any running session with
// linedit.ErrInputClosed, then waits for it before closing the slave.
func (h *Harness) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = errors.New("panic during close")
		h.closeErr = h.close()
	})
	return h.closeErr
}

func (h *Harness) close() error {
	var errs []error
	if err := h.console.Close(); err != nil {
		errs = append(errs, err)
	}

	if h.runStarted.Load() {
		select {
		case <-h.doneCh:
		case <-time.After(harnessPromptExitTimeout):
			// N.B. the slave stays open, since a session still using its
			// descriptor would otherwise end up using whatever reuses it
			errs = append(errs, errHarnessPromptExitTimeout)
			return fmt.Errorf("close errors: %w", errors.Join(errs...))
		}
	}

	if err := h.pts.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) != 0 {
		return fmt.Errorf("close errors: %w", errors.Join(errs...))
	}
	return nil
}
