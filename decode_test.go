package linedit

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecoder_Decode(t *testing.T) {
	tests := map[string]struct {
		input []byte
		want  []Event
	}{
		"printable": {
			input: []byte("aZ"),
			want: []Event{
				KeyEvent{Rune: 'a', Raw: []byte("a")},
				KeyEvent{Rune: 'Z', Raw: []byte("Z")},
			},
		},
		"utf8": {
			input: []byte("é"),
			want:  []Event{KeyEvent{Rune: 'é', Raw: []byte("é")}},
		},
		"enter cr": {
			input: []byte{0x0d},
			want:  []Event{KeyEvent{Key: Enter, Raw: []byte{0x0d}}},
		},
		"enter lf": {
			input: []byte{0x0a},
			want:  []Event{KeyEvent{Key: Enter, Raw: []byte{0x0a}}},
		},
		"backspace del": {
			input: []byte{0x7f},
			want:  []Event{KeyEvent{Key: Backspace, Raw: []byte{0x7f}}},
		},
		"backspace ctrl h": {
			input: []byte{0x08},
			want:  []Event{KeyEvent{Key: Backspace, Raw: []byte{0x08}}},
		},
		"control c": {
			input: []byte{0x03},
			want:  []Event{KeyEvent{Key: ControlC, Raw: []byte{0x03}}},
		},
		"control z": {
			input: []byte{0x1a},
			want:  []Event{KeyEvent{Key: ControlZ, Raw: []byte{0x1a}}},
		},
		"arrows": {
			input: []byte("\x1b[D\x1b[C"),
			want: []Event{
				KeyEvent{Key: Left, Raw: []byte("\x1b[D")},
				KeyEvent{Key: Right, Raw: []byte("\x1b[C")},
			},
		},
		"ss3 arrow": {
			input: []byte("\x1bOD"),
			want:  []Event{KeyEvent{Key: Left, Raw: []byte("\x1bOD")}},
		},
		"shift right": {
			input: []byte("\x1b[1;2C"),
			want:  []Event{KeyEvent{Key: Right, Modifiers: ModShift, Raw: []byte("\x1b[1;2C")}},
		},
		"ctrl left": {
			input: []byte("\x1b[1;5D"),
			want:  []Event{KeyEvent{Key: Left, Modifiers: ModCtrl, Raw: []byte("\x1b[1;5D")}},
		},
		"delete": {
			input: []byte("\x1b[3~"),
			want:  []Event{KeyEvent{Key: Delete, Raw: []byte("\x1b[3~")}},
		},
		"f5": {
			input: []byte("\x1b[15~"),
			want:  []Event{KeyEvent{Key: F5, Raw: []byte("\x1b[15~")}},
		},
		"alt char": {
			input: []byte("\x1bx"),
			want:  []Event{KeyEvent{Rune: 'x', Modifiers: ModAlt, Raw: []byte("\x1bx")}},
		},
		"lone escape": {
			input: []byte{0x1b},
			want:  []Event{KeyEvent{Key: Escape, Raw: []byte{0x1b}}},
		},
		"focus": {
			input: []byte("\x1b[I\x1b[O"),
			want:  []Event{FocusEvent{Gained: true}, FocusEvent{Gained: false}},
		},
		"paste markers": {
			input: []byte("\x1b[200~\x1b[201~"),
			want:  []Event{PasteEvent{Start: true}, PasteEvent{Start: false}},
		},
		"sgr mouse": {
			input: []byte("\x1b[<0;10;5M"),
			want:  []Event{MouseEvent{Raw: []byte("\x1b[<0;10;5M")}},
		},
		"x10 mouse": {
			input: []byte("\x1b[M !!"),
			want:  []Event{MouseEvent{Raw: []byte("\x1b[M !!")}},
		},
		"unexpected cursor position is a key": {
			input: []byte("\x1b[1;2R"),
			want:  []Event{KeyEvent{Key: F3, Modifiers: ModShift, Raw: []byte("\x1b[1;2R")}},
		},
		"unknown sequence": {
			input: []byte("\x1b[99~"),
			want:  []Event{KeyEvent{Key: Unknown, Raw: []byte("\x1b[99~")}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var d Decoder
			got := d.Decode(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Error(diff)
			}
			if p := d.Pending(); len(p) != 0 {
				t.Errorf("unexpected pending input: %q", p)
			}
		})
	}
}

func TestDecoder_SplitSequence(t *testing.T) {
	var d Decoder
	if got := d.Decode([]byte("a\x1b[")); len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got := string(d.Pending()); got != "\x1b[" {
		t.Fatalf("Pending() = %q", got)
	}
	got := d.Decode([]byte("3~"))
	want := []Event{KeyEvent{Key: Delete, Raw: []byte("\x1b[3~")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestDecoder_SplitRune(t *testing.T) {
	var d Decoder
	b := []byte("日")
	if got := d.Decode(b[:1]); len(got) != 0 {
		t.Fatalf("got %d events, want 0", len(got))
	}
	got := d.Decode(b[1:])
	want := []Event{KeyEvent{Rune: '日', Raw: b}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestDecoder_CursorPosition(t *testing.T) {
	var d Decoder
	d.ExpectCursorPosition(0)
	got := d.Decode([]byte("x\x1b[12;40Ry\x1b[1;2R"))
	want := []Event{
		KeyEvent{Rune: 'x', Raw: []byte("x")},
		CursorPositionEvent{Row: 12, Col: 40},
		KeyEvent{Rune: 'y', Raw: []byte("y")},
		// only one reply was expected
		KeyEvent{Key: F3, Modifiers: ModShift, Raw: []byte("\x1b[1;2R")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestDecoder_CursorPositionExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	d := Decoder{now: func() time.Time { return now }}
	d.ExpectCursorPosition(time.Second)
	d.ExpectCursorPosition(time.Second)

	now = now.Add(999 * time.Millisecond)
	if diff := cmp.Diff([]Event{CursorPositionEvent{Row: 3, Col: 4}}, d.Decode([]byte("\x1b[3;4R"))); diff != "" {
		t.Error(diff)
	}

	// the second request went unanswered
	now = now.Add(time.Millisecond)
	want := []Event{KeyEvent{Key: F3, Modifiers: ModShift, Raw: []byte("\x1b[1;2R")}}
	if diff := cmp.Diff(want, d.Decode([]byte("\x1b[1;2R"))); diff != "" {
		t.Error(diff)
	}
	if d.expectCPR != 0 {
		t.Errorf("expectCPR = %d, want 0", d.expectCPR)
	}
}

func TestDecoder_Overlong(t *testing.T) {
	var d Decoder
	input := append([]byte("\x1b["), make([]byte, 0, maxSequenceLength)...)
	for range maxSequenceLength {
		input = append(input, '1')
	}
	got := d.Decode(input)
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if k, ok := got[0].(KeyEvent); !ok || k.Key != Unknown {
		t.Errorf("got %#v, want Unknown key", got[0])
	}
	if p := d.Pending(); len(p) != 0 {
		t.Errorf("unexpected pending input: %q", p)
	}
}
