package linedit

import (
	istrings "github.com/joeycumines/go-linedit/strings"
)

// Buffer holds the line being edited and the logical cursor, an index in
// runes into the text. The cursor is always within [0, Len()].
type Buffer struct {
	text   []rune
	cursor istrings.RuneNumber
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() istrings.RuneNumber {
	return istrings.RuneNumber(len(b.text))
}

// Cursor returns the logical cursor index.
func (b *Buffer) Cursor() istrings.RuneNumber {
	return b.cursor
}

// Runes returns the buffer contents as runes. The slice must not be modified.
func (b *Buffer) Runes() []rune {
	return b.text
}

// BeforeCursor returns the runes preceding the cursor. The slice must not be
// modified.
func (b *Buffer) BeforeCursor() []rune {
	return b.text[:b.cursor]
}

// DisplayCursor returns the number of columns occupied by the text before
// the cursor.
func (b *Buffer) DisplayCursor() istrings.Width {
	return istrings.GetRunesWidth(b.text[:b.cursor])
}

// DisplayWidth returns the number of columns occupied by the whole text.
func (b *Buffer) DisplayWidth() istrings.Width {
	return istrings.GetRunesWidth(b.text)
}

// Insert inserts r at the cursor, then advances the cursor past it.
func (b *Buffer) Insert(r rune) {
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = r
	b.cursor++
}

// InsertText inserts s at the cursor, advancing the cursor past the inserted
// text.
func (b *Buffer) InsertText(s string) {
	n := istrings.RuneCountInString(s)
	if n == 0 {
		return
	}
	tail := append([]rune(s), b.text[b.cursor:]...)
	b.text = append(b.text[:b.cursor], tail...)
	b.cursor += n
}

// CursorLeft moves the cursor one rune to the left, stopping at 0.
func (b *Buffer) CursorLeft() {
	b.cursor = istrings.Clamp(b.cursor-1, 0, b.Len())
}

// CursorRight moves the cursor one rune to the right, stopping at Len().
func (b *Buffer) CursorRight() {
	b.cursor = istrings.Clamp(b.cursor+1, 0, b.Len())
}

// CanDelete reports whether there is a rune under (after) the cursor.
func (b *Buffer) CanDelete() bool {
	return b.cursor < b.Len()
}

// Delete removes and returns the rune after the cursor. It panics if the
// cursor is at the end of the buffer, see CanDelete.
func (b *Buffer) Delete() rune {
	if !b.CanDelete() {
		panic("linedit: delete at end of buffer")
	}
	r := b.text[b.cursor]
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return r
}

// Backspace deletes the rune before the cursor, by moving left then
// deleting. It does nothing at the start of the buffer.
func (b *Buffer) Backspace() {
	if b.cursor == 0 {
		return
	}
	b.CursorLeft()
	b.Delete()
}
