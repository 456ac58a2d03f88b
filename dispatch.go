package linedit

import (
	"github.com/joeycumines/go-linedit/debug"
)

// dispatch applies a single event, reporting whether the line was accepted.
// Any error ends the session.
func (p *Prompt) dispatch(ev Event) (done bool, err error) {
	switch ev := ev.(type) {
	case KeyEvent:
		return p.dispatchKey(ev)

	case ResizeEvent:
		// the terminal may have reflowed the text, so the origin is only
		// known once the cursor position is reported
		p.renderer.UpdateWinSize(ev.Size)
		p.decoder.ExpectCursorPosition(p.cprTimeout)
		debug.Logger().Debug().Log("resize")
		return false, p.renderer.RequestPosition()

	case CursorPositionEvent:
		p.renderer.Reanchor(p.buffer, ev.Row)
		return false, p.renderer.Redraw(p.buffer)

	case FocusEvent:
		return false, nil

	case MouseEvent:
		return false, &UnsupportedInputError{Event: ev, Err: ErrMouseCapture}

	case PasteEvent:
		return false, &UnsupportedInputError{Event: ev, Err: ErrBracketedPaste}
	}

	debug.Assert(false, "unhandled event type")
	return false, nil
}

func (p *Prompt) dispatchKey(ev KeyEvent) (bool, error) {
	switch ev.Modifiers {
	case ModNone:
		switch ev.Key {
		case NotDefined:
			if ev.Printable() {
				p.buffer.Insert(ev.Rune)
				return false, p.renderer.Redraw(p.buffer)
			}
		case Enter:
			return true, nil
		case Backspace:
			p.buffer.Backspace()
			return false, p.renderer.Redraw(p.buffer)
		case Delete:
			if !p.buffer.CanDelete() {
				return false, nil
			}
			p.buffer.Delete()
			return false, p.renderer.Redraw(p.buffer)
		case Left:
			p.buffer.CursorLeft()
			return false, p.renderer.Reposition(p.buffer)
		case Right:
			p.buffer.CursorRight()
			return false, p.renderer.Reposition(p.buffer)
		}
		return false, &UnsupportedInputError{Event: ev, Err: ErrUnsupportedKey}

	case ModShift:
		switch {
		case ev.Key == Right:
			return false, p.insertDebugToken()
		case ev.Printable():
			p.buffer.Insert(ev.Rune)
			return false, p.renderer.Redraw(p.buffer)
		}
	}

	return false, &UnsupportedInputError{Event: ev, Err: ErrUnsupportedModifier}
}

// insertDebugToken inserts a fixed run of characters at the cursor, making it
// easy to fill several rows when checking wrapping by hand.
func (p *Prompt) insertDebugToken() error {
	p.buffer.InsertText(p.debugToken)
	return p.renderer.Redraw(p.buffer)
}
