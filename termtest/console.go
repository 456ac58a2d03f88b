//go:build unix

package termtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	consoleWaitOnDoneCloseTimeout = time.Second

	cursorPositionRequest = "\x1b[6n"
)

var (
	errConsoleReaderLoopTimeout = errors.New("timeout waiting for console reader loop to exit")
)

// Console represents the user's view of a terminal session.
// It is thread-safe and implements io.Writer, io.StringWriter, and io.Closer.
type Console struct {
	mu             sync.RWMutex
	output         bytes.Buffer
	scanned        int // offset up to which cursor position requests were answered
	requests       int
	cursorRow      int
	cursorCol      int
	ptm            *os.File   // PTY Master
	in             *ptyReader // reads and writes ptm
	cmd            *exec.Cmd // Underlying command (nil if harness)
	defaultTimeout time.Duration
	done           chan struct{} // Signals reader loop completion
	closed         bool

	// Process exit management
	waitOnce  sync.Once
	exitCh    chan struct{} // Closed when the process waits successfully
	exitCode  int
	exitErr   error
	closeOnce sync.Once
	closeErr  error
}

// Snapshot is an opaque token representing a specific point in the output history.
type Snapshot struct {
	offset int
}

// NewConsole starts an external process attached to a PTY.
func NewConsole(ctx context.Context, opts ...ConsoleOption) (*Console, error) {
	cfg, err := resolveConsoleOptions(opts)
	if err != nil {
		return nil, err
	}
	if cfg.cmdName == "" {
		return nil, errors.New("no command specified: use WithCommand(cmdName, args...) to specify the command")
	}

	cmd := exec.CommandContext(ctx, cfg.cmdName, cfg.args...)
	cmd.Env = append(os.Environ(), cfg.env...)
	cmd.Env = append(cmd.Env,
		"TERM=xterm-256color",
		"COLUMNS="+strconv.Itoa(int(cfg.cols)),
		"LINES="+strconv.Itoa(int(cfg.rows)),
	)
	if cfg.dir != "" {
		cmd.Dir = cfg.dir
	}

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: cfg.rows, Cols: cfg.cols})
	if err != nil {
		return nil, fmt.Errorf("failed to start command with pty: %w", err)
	}

	c, err := newConsole(ptm, cmd, &cfg.termConfig)
	if err != nil {
		_ = ptm.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	return c, nil
}

// newConsole initializes a Console instance from a PTY master.
func newConsole(ptm *os.File, cmd *exec.Cmd, cfg *termConfig) (*Console, error) {
	in := newPTYReader(ptm)
	if err := in.Open(); err != nil {
		_ = in.Release()
		return nil, fmt.Errorf("failed to open pty master: %w", err)
	}
	c := &Console{
		ptm:            ptm,
		in:             in,
		cmd:            cmd,
		cursorRow:      cfg.cursorRow,
		cursorCol:      cfg.cursorCol,
		defaultTimeout: cfg.defaultTimeout,
		done:           make(chan struct{}),
		exitCh:         make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// SetCursorPosition sets the 1-based position reported in reply to
// subsequent cursor position requests.
func (c *Console) SetCursorPosition(row, col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursorRow = row
	c.cursorCol = col
}

// CursorPositionRequests returns how many cursor position requests have
// been answered.
func (c *Console) CursorPositionRequests() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests
}

// Snapshot captures the current state of the output buffer.
// MUST be called immediately before an action to establish a baseline for assertions.
func (c *Console) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{offset: c.output.Len()}
}

// Await blocks until the output generated SINCE the snapshot satisfies the Condition.
// It returns an error if the context is cancelled.
func (c *Console) Await(ctx context.Context, since Snapshot, cond Condition) error {
	if c.checkCondition(since, cond) {
		return nil
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if c.checkCondition(since, cond) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if c.checkCondition(since, cond) {
				return nil
			}
		}
	}
}

// Expect is a wrapper around Await that provides descriptive error messages.
// It uses the console's default timeout if the context has no deadline.
func (c *Console) Expect(ctx context.Context, since Snapshot, cond Condition, description string) error {
	waitCtx := ctx
	if _, ok := ctx.Deadline(); !ok && c.defaultTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.defaultTimeout)
		defer cancel()
	}

	if err := c.Await(waitCtx, since, cond); err != nil {
		return fmt.Errorf("expected %s not found in new output: %w\nOutput chunk: %q",
			description, err, c.since(since))
	}
	return nil
}

func (c *Console) since(s Snapshot) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.output.String()
	if s.offset > len(out) {
		return out
	}
	return out[s.offset:]
}

func (c *Console) checkCondition(since Snapshot, cond Condition) bool {
	return cond(c.since(since))
}

// Write writes raw bytes to the PTY master.
func (c *Console) Write(p []byte) (n int, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.in == nil {
		return 0, io.ErrClosedPipe
	}
	return c.in.Write(p)
}

// WriteString writes a raw string to the PTY master.
func (c *Console) WriteString(s string) (n int, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.in == nil {
		return 0, io.ErrClosedPipe
	}
	return c.in.Write([]byte(s))
}

// Send writes the sequences for the named keys, see keyMap.
func (c *Console) Send(keys ...string) error {
	for _, k := range keys {
		seq, err := lookupKey(k)
		if err != nil {
			return err
		}
		if _, err := c.WriteString(seq); err != nil {
			return err
		}
		// Brief yield - tries to avoid buffering keys together (WARNING: not deterministic)
		time.Sleep(time.Millisecond)
	}
	return nil
}

// SendLine types input, then presses Enter.
func (c *Console) SendLine(input string) error {
	if _, err := c.WriteString(input); err != nil {
		return err
	}
	return c.Send("enter")
}

// WaitExit waits for the underlying command to exit.
func (c *Console) WaitExit(ctx context.Context) (int, error) {
	if c.cmd == nil {
		return -1, errors.New("no command to wait for (harness mode)")
	}

	// N.B. runs in the background
	c.waitProcess()

	select {
	case <-ctx.Done():
		return -1, ctx.Err()
	case <-c.exitCh:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.exitCode, c.exitErr
	}
}

// waitProcess starts awaiting the process exit in a goroutine, and is performed lazily.
func (c *Console) waitProcess() {
	c.waitOnce.Do(func() {
		go func() {
			err := c.cmd.Wait()

			c.mu.Lock()
			c.exitErr = err
			var exitErr *exec.ExitError
			switch {
			case err == nil:
				c.exitCode = 0
			case errors.As(err, &exitErr):
				c.exitCode = exitErr.ExitCode()
			default:
				c.exitCode = -1
			}
			c.mu.Unlock()

			close(c.exitCh)
		}()
	})
}

// Close terminates the console session.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = errors.New("panic during close")
		c.closeErr = c.close()
	})
	return c.closeErr
}

func (c *Console) close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	var errs []error

	// the master is only released once the reader loop has stopped reading
	// it, otherwise the slave would not see the hangup
	c.in.Stop()
	select {
	case <-c.done:
		if err := c.in.Release(); err != nil {
			errs = append(errs, err)
		}
	case <-time.After(consoleWaitOnDoneCloseTimeout):
		errs = append(errs, errConsoleReaderLoopTimeout)
	}

	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		// N.B. runs in the background
		c.waitProcess()
	}

	if len(errs) != 0 {
		return fmt.Errorf("close errors: %w", errors.Join(errs...))
	}
	return nil
}

// String returns the accumulated output.
func (c *Console) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.output.String()
}

func (c *Console) readLoop() {
	defer close(c.done)
	buf := make([]byte, 4096)

	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.output.Write(buf[:n])
			replies := c.answerRequestsLocked()
			c.mu.Unlock()
			if len(replies) != 0 {
				_, _ = c.WriteString(replies)
			}
		}
		if err != nil {
			return
		}
	}
}

// answerRequestsLocked scans new output for cursor position requests,
// returning the replies to write, in order.
func (c *Console) answerRequestsLocked() string {
	data := c.output.Bytes()
	var replies []byte
	for {
		i := bytes.Index(data[c.scanned:], []byte(cursorPositionRequest))
		if i < 0 {
			break
		}
		c.scanned += i + len(cursorPositionRequest)
		c.requests++
		replies = fmt.Appendf(replies, "\x1b[%d;%dR", c.cursorRow, c.cursorCol)
	}
	// a request may be split across reads
	c.scanned = max(c.scanned, len(data)-(len(cursorPositionRequest)-1))
	return string(replies)
}
