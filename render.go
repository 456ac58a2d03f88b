package linedit

import (
	"github.com/joeycumines/go-linedit/debug"
	istrings "github.com/joeycumines/go-linedit/strings"
)

// Renderer keeps the terminal in sync with a Buffer, for one prompt session.
type Renderer struct {
	out  Writer
	ctx  Context
	cols istrings.Width
	rows int
}

// NewRenderer returns a renderer writing to out, with a default terminal size.
func NewRenderer(out Writer) *Renderer {
	return &Renderer{
		out:  out,
		cols: DefColCount,
		rows: DefRowCount,
	}
}

// Context returns the current render context.
func (r *Renderer) Context() Context {
	return r.ctx
}

// SetContext replaces the render context.
func (r *Renderer) SetContext(ctx Context) {
	r.ctx = ctx
}

// UpdateWinSize updates the terminal size used for wrapping.
func (r *Renderer) UpdateWinSize(ws *WinSize) {
	if ws == nil || ws.Col == 0 {
		return
	}
	r.cols = istrings.Width(ws.Col)
	r.rows = int(ws.Row)
}

// Columns returns the wrap width.
func (r *Renderer) Columns() istrings.Width {
	return r.cols
}

// Setup anchors the session at origin (as reported by the terminal, so
// 1-based) and paints the prefix. The column the prompt starts at counts
// towards the prompt width.
func (r *Renderer) Setup(origin CursorPositionEvent, prefix string) error {
	r.ctx = Context{
		OriginRow:   origin.Row - 1,
		PromptWidth: istrings.Width(max(origin.Col-1, 0)) + istrings.GetWidth(prefix),
	}
	r.ensureVisible(r.ctx.TextStart(r.cols).Row)
	r.out.CursorGoTo(r.ctx.OriginRow, max(origin.Col-1, 0))
	r.out.WriteString(prefix)
	start := r.ctx.TextStart(r.cols)
	r.out.CursorGoTo(start.Row, start.Col)
	debug.Logger().Debug().
		Int("origin_row", r.ctx.OriginRow).
		Int("prompt_width", int(r.ctx.PromptWidth)).
		Int("cols", int(r.cols)).
		Log("render setup")
	return r.out.Flush()
}

// Position returns the screen coordinate of the buffer's cursor.
func (r *Renderer) Position(b *Buffer) Position {
	return r.ctx.Position(b.BeforeCursor(), r.cols)
}

// Reposition moves the terminal cursor to the buffer's cursor, without
// painting any text.
func (r *Renderer) Reposition(b *Buffer) error {
	pos := r.Position(b)
	if r.ensureVisible(pos.Row) {
		pos = r.Position(b)
	}
	r.out.CursorGoTo(pos.Row, pos.Col)
	return r.out.Flush()
}

// Redraw repaints the whole text. The terminal is left with its cursor after
// the painted text, so the logical cursor position is saved first, then
// restored once painting is done.
func (r *Renderer) Redraw(b *Buffer) error {
	last := r.ctx.LastRow(b.Runes(), r.cols)
	pos := r.Position(b)
	if r.ensureVisible(max(last, pos.Row)) {
		pos = r.Position(b)
	}

	r.out.CursorGoTo(pos.Row, pos.Col)
	r.out.SaveCursor()

	start := r.ctx.TextStart(r.cols)
	r.out.CursorGoTo(start.Row, start.Col)
	r.out.EraseDown()
	r.out.WriteString(b.Text())

	r.out.UnSaveCursor()
	return r.out.Flush()
}

// BreakLine moves the cursor past the end of the text, onto a new line.
// Text that fills its last row exactly breaks from that row, rather than from
// the start of the row after it.
func (r *Renderer) BreakLine(b *Buffer) error {
	end := r.lineEnd(b)
	if r.ensureVisible(end.Row) {
		end = r.lineEnd(b)
	}
	r.out.CursorGoTo(end.Row, end.Col)
	r.out.NewLine()
	return r.out.Flush()
}

func (r *Renderer) lineEnd(b *Buffer) Position {
	end := r.ctx.Position(b.Runes(), r.cols)
	if end.Col == 0 && end.Row > r.ctx.OriginRow {
		end.Row--
		end.Col = int(r.cols) - 1
	}
	return end
}

// Reanchor moves the origin so the buffer's cursor maps to row, a 1-based
// row reported by the terminal.
func (r *Renderer) Reanchor(b *Buffer, row int) {
	r.ctx = r.ctx.Reanchor(row-1, b.BeforeCursor(), r.cols)
	debug.Logger().Debug().
		Int("origin_row", r.ctx.OriginRow).
		Int("cols", int(r.cols)).
		Log("render reanchor")
}

// ensureVisible scrolls the screen if row is below the last terminal row,
// moving the origin up by the same amount. It reports whether it scrolled.
func (r *Renderer) ensureVisible(row int) bool {
	if r.rows <= 0 || row < r.rows {
		return false
	}
	n := row - r.rows + 1
	r.out.ScrollUp(n)
	r.ctx.OriginRow -= n
	return true
}

// RequestPosition asks the terminal to report the cursor position.
func (r *Renderer) RequestPosition() error {
	r.out.AskForCPR()
	return r.out.Flush()
}
