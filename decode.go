package linedit

import (
	"bytes"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

// maxSequenceLength bounds how many bytes of an unterminated escape sequence
// are carried between reads, before the sequence is discarded as Unknown.
const maxSequenceLength = 64

var csiIntroducer = []byte{0x1b, '['}

// Decoder converts raw terminal input into events. Escape sequences split
// across reads are held back until the rest arrives, except a lone trailing
// ESC, which is always the Escape key.
//
// A cursor position reply is ambiguous with some modified function keys
// (e.g. Shift+F3 is ESC[1;2R), so it is only recognised while one has been
// requested, see ExpectCursorPosition.
type Decoder struct {
	pending     []byte
	expectCPR   int
	cprDeadline time.Time
	now         func() time.Time
}

// ExpectCursorPosition records that a cursor position request was written.
// A reply is accepted until timeout elapses, after which the expectation
// lapses and the same bytes decode as a key again. A timeout <= 0 never
// lapses.
func (d *Decoder) ExpectCursorPosition(timeout time.Duration) {
	d.expectCPR++
	if timeout > 0 {
		d.cprDeadline = d.clock().Add(timeout)
	} else {
		d.cprDeadline = time.Time{}
	}
}

func (d *Decoder) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func (d *Decoder) cursorPositionExpected() bool {
	if d.expectCPR == 0 {
		return false
	}
	if !d.cprDeadline.IsZero() && !d.clock().Before(d.cprDeadline) {
		d.expectCPR = 0
		d.cprDeadline = time.Time{}
		return false
	}
	return true
}

// Pending returns any bytes held back, awaiting the rest of a sequence.
func (d *Decoder) Pending() []byte {
	return d.pending
}

// Decode appends b to any pending input and returns every complete event.
func (d *Decoder) Decode(b []byte) []Event {
	data := append(d.pending, b...)
	d.pending = nil

	var events []Event
	for len(data) > 0 {
		ev, n := d.next(data)
		if n == 0 {
			if len(data) > maxSequenceLength {
				events = append(events, KeyEvent{Key: Unknown, Raw: clone(data)})
				data = nil
				break
			}
			d.pending = clone(data)
			break
		}
		if ev != nil {
			events = append(events, ev)
		}
		data = data[n:]
	}
	return events
}

// next decodes one event from the start of data, returning the number of
// bytes consumed, or 0 if more input is required.
func (d *Decoder) next(data []byte) (Event, int) {
	c := data[0]
	switch {
	case c == 0x1b:
		if len(data) == 1 {
			return KeyEvent{Key: Escape, Raw: clone(data[:1])}, 1
		}
		switch data[1] {
		case '[':
			return d.csi(data)
		case 'O':
			return ss3(data)
		case 0x1b:
			return KeyEvent{Key: Escape, Modifiers: ModAlt, Raw: clone(data[:2])}, 2
		}
		ev, n := simple(data[1:])
		if n == 0 {
			return nil, 0
		}
		ev.Modifiers |= ModAlt
		ev.Raw = clone(data[:n+1])
		return ev, n + 1

	default:
		ev, n := simple(data)
		if n == 0 {
			return nil, 0
		}
		return ev, n
	}
}

// simple decodes a single control byte or UTF-8 encoded character.
func simple(data []byte) (KeyEvent, int) {
	c := data[0]
	if c < 0x20 || c == 0x7f {
		return KeyEvent{Key: controlKey(c), Raw: clone(data[:1])}, 1
	}
	if !utf8.FullRune(data) {
		return KeyEvent{}, 0
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return KeyEvent{Key: Unknown, Raw: clone(data[:1])}, 1
	}
	return KeyEvent{Rune: r, Raw: clone(data[:size])}, size
}

func controlKey(c byte) Key {
	switch c {
	case 0x00:
		return ControlSpace
	case 0x08, 0x7f:
		return Backspace
	case 0x09:
		return Tab
	case 0x0a, 0x0d:
		return Enter
	case 0x1b:
		return Escape
	case 0x1c:
		return ControlBackslash
	case 0x1d:
		return ControlSquareClose
	case 0x1e:
		return ControlCircumflex
	case 0x1f:
		return ControlUnderscore
	case 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07:
		return ControlA + Key(c-0x01)
	case 0x0b, 0x0c:
		return ControlK + Key(c-0x0b)
	}
	// 0x0e (ControlN) through 0x1a (ControlZ)
	return ControlN + Key(c-0x0e)
}

func ss3(data []byte) (Event, int) {
	if len(data) < 3 {
		return nil, 0
	}
	raw := clone(data[:3])
	switch data[2] {
	case 'A':
		return KeyEvent{Key: Up, Raw: raw}, 3
	case 'B':
		return KeyEvent{Key: Down, Raw: raw}, 3
	case 'C':
		return KeyEvent{Key: Right, Raw: raw}, 3
	case 'D':
		return KeyEvent{Key: Left, Raw: raw}, 3
	case 'H':
		return KeyEvent{Key: Home, Raw: raw}, 3
	case 'F':
		return KeyEvent{Key: End, Raw: raw}, 3
	case 'P', 'Q', 'R', 'S':
		return KeyEvent{Key: F1 + Key(data[2]-'P'), Raw: raw}, 3
	}
	return KeyEvent{Key: Unknown, Raw: raw}, 3
}

func (d *Decoder) csi(data []byte) (Event, int) {
	if len(data) < 3 {
		return nil, 0
	}

	// X10 mouse: ESC [ M Cb Cx Cy
	if data[2] == 'M' {
		if len(data) < 6 {
			return nil, 0
		}
		return MouseEvent{Raw: clone(data[:6])}, 6
	}

	// parameter bytes, then intermediate bytes, then the final byte
	i := len(csiIntroducer)
	for i < len(data) && data[i] >= 0x30 && data[i] <= 0x3f {
		i++
	}
	for i < len(data) && data[i] >= 0x20 && data[i] <= 0x2f {
		i++
	}
	if i >= len(data) {
		return nil, 0
	}
	final := data[i]
	n := i + 1
	raw := clone(data[:n])
	if final < 0x40 || final > 0x7e {
		// malformed, consume the introducer only
		return KeyEvent{Key: Unknown, Raw: clone(data[:2])}, 2
	}

	params := data[len(csiIntroducer):i]
	if len(params) > 0 && params[0] == '<' {
		if final == 'M' || final == 'm' {
			return MouseEvent{Raw: raw}, n
		}
		return KeyEvent{Key: Unknown, Raw: raw}, n
	}
	args := parseParams(params)

	switch final {
	case 'I', 'O':
		if len(params) == 0 {
			return FocusEvent{Gained: final == 'I'}, n
		}
	case 'R':
		if len(args) == 2 && d.cursorPositionExpected() {
			d.expectCPR--
			return CursorPositionEvent{Row: args[0], Col: args[1]}, n
		}
	case '~':
		if len(args) > 0 && (args[0] == 200 || args[0] == 201) {
			return PasteEvent{Start: args[0] == 200}, n
		}
	}

	key, ok := csiKey(final, args)
	if !ok {
		return KeyEvent{Key: Unknown, Raw: raw}, n
	}
	var mods Modifiers
	if len(args) > 1 && args[1] > 1 {
		mods = Modifiers(args[1] - 1)
	}
	return KeyEvent{Key: key, Modifiers: mods, Raw: raw}, n
}

func csiKey(final byte, args []int) (Key, bool) {
	switch final {
	case 'A':
		return Up, true
	case 'B':
		return Down, true
	case 'C':
		return Right, true
	case 'D':
		return Left, true
	case 'H':
		return Home, true
	case 'F':
		return End, true
	case 'Z':
		return BackTab, true
	case 'P', 'Q', 'R', 'S':
		return F1 + Key(final-'P'), true
	case '~':
		if len(args) == 0 {
			return 0, false
		}
		switch v := args[0]; {
		case v == 1 || v == 7:
			return Home, true
		case v == 2:
			return Insert, true
		case v == 3:
			return Delete, true
		case v == 4 || v == 8:
			return End, true
		case v == 5:
			return PageUp, true
		case v == 6:
			return PageDown, true
		case v >= 11 && v <= 15:
			return F1 + Key(v-11), true
		case v >= 17 && v <= 21:
			return F6 + Key(v-17), true
		case v == 23 || v == 24:
			return F11 + Key(v-23), true
		}
	}
	return 0, false
}

// parseParams parses semicolon separated decimal parameters. Empty or
// non-numeric parameters are 0.
func parseParams(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	parts := bytes.Split(b, []byte{';'})
	args := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(string(p))
		if err == nil {
			args[i] = v
		}
	}
	return args
}

func isPrintable(r rune) bool {
	return r != utf8.RuneError && !unicode.IsControl(r)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
