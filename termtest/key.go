//go:build unix

package termtest

import (
	"fmt"
	"strings"
)

func lookupKey(k string) (string, error) {
	if seq, ok := keyMap[strings.ToLower(k)]; ok {
		return seq, nil
	}
	return "", fmt.Errorf("unknown key: %s", k)
}

// keyMap maps friendly key names to the bytes an xterm compatible terminal
// sends for them.
//
// N.B. The names are aligned with https://github.com/charmbracelet/bubbletea/blob/f9233d51192293dadda7184a4de347738606c328/key.go
var keyMap = map[string]string{
	"ctrl+a": "\x01",
	"ctrl+c": "\x03",
	"ctrl+d": "\x04",
	"ctrl+h": "\x08",
	"ctrl+j": "\x0a",
	"ctrl+m": "\x0d",
	"ctrl+z": "\x1a",

	"enter":     "\r",
	"tab":       "\t",
	"esc":       "\x1b",
	"escape":    "\x1b",
	"backspace": "\x7f",
	"space":     " ",

	"up":     "\x1b[A",
	"down":   "\x1b[B",
	"right":  "\x1b[C",
	"left":   "\x1b[D",
	"home":   "\x1b[H",
	"end":    "\x1b[F",
	"insert": "\x1b[2~",
	"delete": "\x1b[3~",
	"pgup":   "\x1b[5~",
	"pgdown": "\x1b[6~",

	"shift+up":    "\x1b[1;2A",
	"shift+down":  "\x1b[1;2B",
	"shift+right": "\x1b[1;2C",
	"shift+left":  "\x1b[1;2D",
	"ctrl+right":  "\x1b[1;5C",
	"ctrl+left":   "\x1b[1;5D",
	"alt+right":   "\x1b[1;3C",
	"alt+left":    "\x1b[1;3D",

	"f1":  "\x1bOP",
	"f2":  "\x1bOQ",
	"f3":  "\x1bOR",
	"f4":  "\x1bOS",
	"f5":  "\x1b[15~",
	"f12": "\x1b[24~",
}
