package linedit

import (
	istrings "github.com/joeycumines/go-linedit/strings"
)

// Position is a 0-based screen coordinate.
type Position struct {
	Row int
	Col int
}

// Context is the fixed geometry of one prompt session: the row the prompt
// began on, and how many columns precede the editable text.
//
// The prompt and the text are modelled as one continuous run of characters,
// starting at column 0 of OriginRow, wrapping every cols columns. This holds
// only while the terminal width and OriginRow are unchanged.
type Context struct {
	OriginRow   int
	PromptWidth istrings.Width
}

// TextStart returns where the first character of the text is painted. The
// prompt may itself wrap, in which case its extra rows are added to
// OriginRow.
func (c Context) TextStart(cols istrings.Width) Position {
	if cols <= 0 {
		cols = 1
	}
	return Position{
		Row: c.OriginRow + int(c.PromptWidth/cols),
		Col: int(c.PromptWidth % cols),
	}
}

// Position returns where the terminal leaves its cursor after painting text,
// starting from TextStart.
//
// A character that does not fit in what remains of a row is painted whole at
// the start of the next row, leaving the tail of the row blank. Filling the
// last column exactly puts the position at column 0 of the next row.
func (c Context) Position(text []rune, cols istrings.Width) Position {
	if cols <= 0 {
		cols = 1
	}
	pos := c.TextStart(cols)
	col := istrings.Width(pos.Col)
	for _, r := range text {
		w := istrings.GetRuneWidth(r)
		if col > 0 && col+w > cols {
			pos.Row++
			col = 0
		}
		col += w
		for col >= cols && w > 0 {
			pos.Row++
			col -= cols
		}
	}
	pos.Col = int(col)
	return pos
}

// LastRow returns the row the final character of text is painted on, or the
// TextStart row if text is empty.
func (c Context) LastRow(text []rune, cols istrings.Width) int {
	end := c.Position(text, cols)
	if len(text) != 0 && end.Col == 0 && istrings.GetRunesWidth(text) != 0 {
		return end.Row - 1
	}
	return end.Row
}

// Reanchor returns a copy of c with OriginRow moved so that the position
// after text maps to row. It is used after a resize, when the terminal
// reports where the cursor ended up.
func (c Context) Reanchor(row int, text []rune, cols istrings.Width) Context {
	rel := c.Position(text, cols).Row - c.OriginRow
	c.OriginRow = row - rel
	return c
}
