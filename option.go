package linedit

import (
	"errors"
	"time"
)

// Option is the type to replace default parameters.
// linedit.New accepts any number of options (this is functional option pattern).
type Option func(prompt *Prompt) error

// WithReader can be used to set a custom Reader.
func WithReader(r Reader) Option {
	return func(p *Prompt) error {
		if r == nil {
			return errors.New("linedit: nil reader")
		}
		p.reader = r
		return nil
	}
}

// WithWriter can be used to set a custom Writer.
func WithWriter(w Writer) Option {
	return func(p *Prompt) error {
		if w == nil {
			return errors.New("linedit: nil writer")
		}
		p.writer = w
		return nil
	}
}

// WithDebugToken sets the text inserted by Shift+Right.
func WithDebugToken(token string) Option {
	return func(p *Prompt) error {
		if containsControl(token) {
			return errors.New("linedit: debug token contains control characters")
		}
		p.debugToken = token
		return nil
	}
}

// WithCursorPositionTimeout sets how long to wait for the terminal to report
// the cursor position, at the start of each Input.
func WithCursorPositionTimeout(d time.Duration) Option {
	return func(p *Prompt) error {
		if d <= 0 {
			return errors.New("linedit: cursor position timeout must be positive")
		}
		p.cprTimeout = d
		return nil
	}
}
