//go:build unix

package termtest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSequences(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"cursor moves", "\x1b[1;1H$ \x1b[1;3H", "$ "},
		{"save restore", "\x1b7ab\x1b8", "ab"},
		{"erase and crlf", "\x1b[Jabc\r\n", "abc\n"},
		{"ss3", "\x1bOPx", "x"},
		{"dangling escape", "ab\x1b", "ab"},
		{"incomplete csi", "ab\x1b[12", "ab"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripSequences(tc.input))
		})
	}
}

func TestConditions(t *testing.T) {
	out := "\x1b[1;1H$ \x1b[1;3H\x1b7\x1b[1;3H\x1b[Jhi\x1b8"

	assert.True(t, Contains("$ hi")(out))
	assert.False(t, Contains("bye")(out))
	assert.True(t, ContainsRaw("\x1b[J")(out))
	assert.False(t, ContainsRaw("$ hi")(out))
	assert.True(t, CountRaw("\x1b[1;3H", 2)(out))
	assert.False(t, CountRaw("\x1b[1;3H", 3)(out))
	assert.True(t, Matches(regexp.MustCompile(`^\$ hi$`))(out))
	assert.True(t, All(Contains("hi"), Not(Contains("bye")))(out))
	assert.False(t, All(Contains("hi"), Contains("bye"))(out))
}
