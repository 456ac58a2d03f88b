//go:build unix

package termtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeycumines/go-linedit"
)

// ConsoleOption configures a process-based Console.
type ConsoleOption interface {
	applyConsole(*consoleConfig) error
}

// HarnessOption configures an in-process Harness.
type HarnessOption interface {
	applyHarness(*harnessConfig) error
}

// SharedOption is a return type for options compatible with BOTH factories.
type SharedOption interface {
	ConsoleOption
	HarnessOption
}

// termConfig is the terminal emulated by either factory.
type termConfig struct {
	rows           uint16
	cols           uint16
	cursorRow      int
	cursorCol      int
	defaultTimeout time.Duration
}

type consoleConfig struct {
	termConfig
	env     []string
	dir     string
	cmdName string
	args    []string
}

type harnessConfig struct {
	termConfig
	promptOptions []linedit.Option
}

type sharedOption func(*termConfig) error

func (f sharedOption) applyConsole(c *consoleConfig) error { return f(&c.termConfig) }
func (f sharedOption) applyHarness(c *harnessConfig) error { return f(&c.termConfig) }

type consoleOption func(*consoleConfig) error

func (f consoleOption) applyConsole(c *consoleConfig) error { return f(c) }

type harnessOption func(*harnessConfig) error

func (f harnessOption) applyHarness(c *harnessConfig) error { return f(c) }

// WithSize sets the PTY dimensions. Default is 24x80.
func WithSize(rows, cols uint16) SharedOption {
	return sharedOption(func(c *termConfig) error {
		if rows == 0 || cols == 0 {
			return errors.New("size must be non-zero")
		}
		c.rows = rows
		c.cols = cols
		return nil
	})
}

// WithCursorPosition sets the 1-based position reported in reply to cursor
// position requests. Default is 1;1. See also Console.SetCursorPosition.
func WithCursorPosition(row, col int) SharedOption {
	return sharedOption(func(c *termConfig) error {
		if row < 1 || col < 1 {
			return fmt.Errorf("invalid cursor position %d;%d", row, col)
		}
		c.cursorRow = row
		c.cursorCol = col
		return nil
	})
}

// WithDefaultTimeout sets the default timeout for Expect.
func WithDefaultTimeout(d time.Duration) SharedOption {
	return sharedOption(func(c *termConfig) error {
		c.defaultTimeout = d
		return nil
	})
}

// WithEnv appends to the default environment.
func WithEnv(env ...string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.env = append(c.env, env...)
		return nil
	})
}

// WithDir sets the working directory.
func WithDir(path string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.dir = path
		return nil
	})
}

// WithCommand configures the command name/path and arguments to execute.
func WithCommand(cmdName string, args ...string) ConsoleOption {
	return consoleOption(func(c *consoleConfig) error {
		c.cmdName = cmdName
		// WARNING: replace, do not append
		c.args = args
		return nil
	})
}

// WithPromptOptions passes options to the prompt started by Harness.Run.
func WithPromptOptions(opts ...linedit.Option) HarnessOption {
	return harnessOption(func(c *harnessConfig) error {
		c.promptOptions = append(c.promptOptions, opts...)
		return nil
	})
}

func defaultTermConfig() termConfig {
	return termConfig{
		rows:           24,
		cols:           80,
		cursorRow:      1,
		cursorCol:      1,
		defaultTimeout: 30 * time.Second,
	}
}

func resolveConsoleOptions(opts []ConsoleOption) (*consoleConfig, error) {
	cfg := &consoleConfig{termConfig: defaultTermConfig()}
	for _, opt := range opts {
		if err := opt.applyConsole(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply console option: %w", err)
		}
	}
	return cfg, nil
}

func resolveHarnessOptions(opts []HarnessOption) (*harnessConfig, error) {
	cfg := &harnessConfig{termConfig: defaultTermConfig()}
	for _, opt := range opts {
		if err := opt.applyHarness(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply harness option: %w", err)
		}
	}
	return cfg, nil
}
