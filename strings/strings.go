// Package strings provides the width and counting helpers used to map buffer
// contents onto terminal columns.
package strings

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/constraints"
)

// Width is the number of terminal columns occupied by some text.
type Width int

// RuneNumber is an index or count of runes (Unicode scalar values).
type RuneNumber int

// GetWidth returns the number of columns the given string occupies when
// printed to a terminal. It is measured rune by rune, with the same widths
// GetRuneWidth reports, so a prompt and buffer text share one column model.
func GetWidth(s string) Width {
	var w Width
	for _, r := range s {
		w += GetRuneWidth(r)
	}
	return w
}

// GetRuneWidth returns the number of columns a single rune occupies.
func GetRuneWidth(r rune) Width {
	return Width(runewidth.RuneWidth(r))
}

// GetRunesWidth is GetWidth for a rune slice, summing the width of each rune.
// Zero width runes (combining marks etc) contribute nothing.
func GetRunesWidth(rs []rune) Width {
	var w Width
	for _, r := range rs {
		w += GetRuneWidth(r)
	}
	return w
}

func RuneCountInString(s string) RuneNumber {
	return RuneNumber(utf8.RuneCountInString(s))
}

// Clamp returns v limited to the closed range [lo, hi].
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
