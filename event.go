package linedit

import (
	"fmt"
	"strconv"
)

// Event is a single decoded unit of terminal input.
type Event interface {
	isEvent()
}

// KeyEvent is a key press. Printable characters use Key NotDefined, with the
// character in Rune.
type KeyEvent struct {
	Key       Key
	Modifiers Modifiers
	Rune      rune
	// Raw holds the bytes the event was decoded from.
	Raw []byte
}

// FocusEvent reports the terminal window gaining or losing focus.
type FocusEvent struct {
	Gained bool
}

// MouseEvent is any mouse report. Mouse capture is never enabled, so these
// are unexpected.
type MouseEvent struct {
	Raw []byte
}

// PasteEvent marks the start or end of a bracketed paste, which is never
// enabled.
type PasteEvent struct {
	Start bool
}

// ResizeEvent is synthesized from a terminal size change notification.
type ResizeEvent struct {
	Size *WinSize
}

// CursorPositionEvent is a reply to a cursor position request (DSR 6).
// Row and Col are 1-based, as reported by the terminal.
type CursorPositionEvent struct {
	Row int
	Col int
}

func (KeyEvent) isEvent()            {}
func (FocusEvent) isEvent()          {}
func (MouseEvent) isEvent()          {}
func (PasteEvent) isEvent()          {}
func (ResizeEvent) isEvent()         {}
func (CursorPositionEvent) isEvent() {}

// Printable reports whether the event is a plain character, i.e. something
// that should be inserted into the buffer.
func (e KeyEvent) Printable() bool {
	return e.Key == NotDefined && e.Rune != 0 && isPrintable(e.Rune)
}

func (e KeyEvent) String() string {
	var name string
	if e.Key == NotDefined {
		name = strconv.QuoteRune(e.Rune)
	} else if e.Key == Unknown {
		name = fmt.Sprintf("Unknown(%q)", e.Raw)
	} else {
		name = e.Key.String()
	}
	if e.Modifiers != ModNone {
		return e.Modifiers.String() + "+" + name
	}
	return name
}
