package linedit

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRenderer(cols, rows uint16) (*Renderer, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewRenderer(NewVT100Writer(&out))
	r.UpdateWinSize(&WinSize{Col: cols, Row: rows})
	return r, &out
}

func TestRenderer_Setup(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	if err := r.Setup(CursorPositionEvent{Row: 1, Col: 1}, "$ "); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Context{OriginRow: 0, PromptWidth: 2}, r.Context()); diff != "" {
		t.Error(diff)
	}
	if got, want := out.String(), "\x1b[1;1H$ \x1b[1;3H"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_SetupMidLine(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	if err := r.Setup(CursorPositionEvent{Row: 2, Col: 5}, "> "); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Context{OriginRow: 1, PromptWidth: 6}, r.Context()); diff != "" {
		t.Error(diff)
	}
	if got, want := out.String(), "\x1b[2;5H> \x1b[2;7H"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_Redraw(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 0, PromptWidth: 2})
	b := NewBuffer()
	b.Insert('a')
	if err := r.Redraw(b); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\x1b[1;4H\x1b7\x1b[1;3H\x1b[Ja\x1b8"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_RedrawCursorInMiddle(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 1, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefghij")
	for range 3 {
		b.CursorLeft()
	}
	if err := r.Redraw(b); err != nil {
		t.Fatal(err)
	}
	// cursor at offset 7, so column 9 of the origin row
	if got, want := out.String(), "\x1b[2;10H\x1b7\x1b[2;3H\x1b[Jabcdefghij\x1b8"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_RedrawScrollsAtBottom(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 4, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefghi")
	if err := r.Redraw(b); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\x1b[1S\x1b[5;2H\x1b7\x1b[4;3H\x1b[Jabcdefghi\x1b8"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := r.Context().OriginRow; got != 3 {
		t.Errorf("OriginRow = %d, want 3", got)
	}
}

func TestRenderer_Reposition(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 2, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefghij")
	b.CursorLeft()
	if err := r.Reposition(b); err != nil {
		t.Fatal(err)
	}
	// offset 9 is column 11, wrapping to column 1 of the next row
	if got, want := out.String(), "\x1b[4;2H"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_BreakLine(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 0, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("hi")
	b.CursorLeft()
	if err := r.BreakLine(b); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\x1b[1;5H\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_BreakLineAtWrapWidth(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 0, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefgh")
	if err := r.BreakLine(b); err != nil {
		t.Fatal(err)
	}
	// the text fills the first row, so break from its last column
	if got, want := out.String(), "\x1b[1;10H\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_BreakLineAtBottomNoScroll(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 4, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefgh")
	if err := r.BreakLine(b); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\x1b[5;10H\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_RedrawWideRuneAtWrap(t *testing.T) {
	r, out := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 0, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefg中")
	if err := r.Redraw(b); err != nil {
		t.Fatal(err)
	}
	// 中 does not fit in the last column, so the terminal paints it on row 2
	if got, want := out.String(), "\x1b[2;3H\x1b7\x1b[1;3H\x1b[Jabcdefg中\x1b8"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	b.CursorLeft()
	if err := r.Reposition(b); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\x1b[1;10H"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_Reanchor(t *testing.T) {
	r, _ := newTestRenderer(10, 5)
	r.SetContext(Context{OriginRow: 3, PromptWidth: 2})
	b := NewBuffer()
	b.InsertText("abcdefghijkl")
	// the cursor, at offset 12 (the second text row), was reported on row 2
	r.Reanchor(b, 2)
	if got := r.Context().OriginRow; got != 0 {
		t.Errorf("OriginRow = %d, want 0", got)
	}
	if got := r.Position(b); got != (Position{Row: 1, Col: 4}) {
		t.Errorf("Position() = %+v", got)
	}
}

func TestRenderer_UpdateWinSizeIgnoresZero(t *testing.T) {
	r, _ := newTestRenderer(10, 5)
	r.UpdateWinSize(&WinSize{})
	r.UpdateWinSize(nil)
	if got := r.Columns(); got != 10 {
		t.Errorf("Columns() = %d, want 10", got)
	}
}
