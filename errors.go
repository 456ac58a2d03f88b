package linedit

import (
	"errors"
)

var (
	// ErrUnsupportedKey is returned for a key with no binding.
	ErrUnsupportedKey = errors.New("unsupported key")
	// ErrUnsupportedModifier is returned for a supported key pressed with a
	// modifier combination that has no binding.
	ErrUnsupportedModifier = errors.New("unsupported modifier")
	// ErrMouseCapture is returned for a mouse event, which can only arrive
	// if something else enabled mouse capture.
	ErrMouseCapture = errors.New("mouse capture should be disabled")
	// ErrBracketedPaste is returned for a bracketed paste marker, which can
	// only arrive if something else enabled bracketed paste.
	ErrBracketedPaste = errors.New("bracketed paste should be disabled")
	// ErrInputClosed is returned when the terminal input reaches EOF.
	ErrInputClosed = errors.New("input closed")
	// ErrTerminated is returned when the session is ended by a signal.
	ErrTerminated = errors.New("terminated")
	// ErrCursorPosition is returned when the terminal does not answer a
	// cursor position request in time.
	ErrCursorPosition = errors.New("no cursor position report")
	// ErrRunning is returned by Input if the prompt is already running.
	ErrRunning = errors.New("prompt already running")
)

// UnsupportedInputError reports input the dispatcher has no handling for.
// It wraps one of ErrUnsupportedKey, ErrUnsupportedModifier, ErrMouseCapture
// or ErrBracketedPaste.
type UnsupportedInputError struct {
	Event Event
	Err   error
}

func (e *UnsupportedInputError) Error() string {
	if k, ok := e.Event.(KeyEvent); ok {
		return e.Err.Error() + ": " + k.String()
	}
	return e.Err.Error()
}

func (e *UnsupportedInputError) Unwrap() error {
	return e.Err
}
