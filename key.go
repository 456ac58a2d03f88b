package linedit

import (
	"strconv"
	"strings"
)

// Key is a decoded key press, independent of the bytes that produced it.
type Key int

const (
	// NotDefined is used for printable characters, see KeyEvent.Rune.
	NotDefined Key = iota

	Escape

	ControlA
	ControlB
	ControlC
	ControlD
	ControlE
	ControlF
	ControlG
	ControlK
	ControlL
	ControlN
	ControlO
	ControlP
	ControlQ
	ControlR
	ControlS
	ControlT
	ControlU
	ControlV
	ControlW
	ControlX
	ControlY
	ControlZ

	ControlSpace
	ControlBackslash
	ControlSquareClose
	ControlCircumflex
	ControlUnderscore

	Up
	Down
	Right
	Left

	Home
	End
	Insert
	Delete
	PageUp
	PageDown

	Tab
	BackTab
	Enter
	Backspace

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Unknown is an escape sequence that could not be mapped to a key.
	Unknown
)

var keyNames = [...]string{
	NotDefined:         "NotDefined",
	Escape:             "Escape",
	ControlA:           "ControlA",
	ControlB:           "ControlB",
	ControlC:           "ControlC",
	ControlD:           "ControlD",
	ControlE:           "ControlE",
	ControlF:           "ControlF",
	ControlG:           "ControlG",
	ControlK:           "ControlK",
	ControlL:           "ControlL",
	ControlN:           "ControlN",
	ControlO:           "ControlO",
	ControlP:           "ControlP",
	ControlQ:           "ControlQ",
	ControlR:           "ControlR",
	ControlS:           "ControlS",
	ControlT:           "ControlT",
	ControlU:           "ControlU",
	ControlV:           "ControlV",
	ControlW:           "ControlW",
	ControlX:           "ControlX",
	ControlY:           "ControlY",
	ControlZ:           "ControlZ",
	ControlSpace:       "ControlSpace",
	ControlBackslash:   "ControlBackslash",
	ControlSquareClose: "ControlSquareClose",
	ControlCircumflex:  "ControlCircumflex",
	ControlUnderscore:  "ControlUnderscore",
	Up:                 "Up",
	Down:               "Down",
	Right:              "Right",
	Left:               "Left",
	Home:               "Home",
	End:                "End",
	Insert:             "Insert",
	Delete:             "Delete",
	PageUp:             "PageUp",
	PageDown:           "PageDown",
	Tab:                "Tab",
	BackTab:            "BackTab",
	Enter:              "Enter",
	Backspace:          "Backspace",
	F1:                 "F1",
	F2:                 "F2",
	F3:                 "F3",
	F4:                 "F4",
	F5:                 "F5",
	F6:                 "F6",
	F7:                 "F7",
	F8:                 "F8",
	F9:                 "F9",
	F10:                "F10",
	F11:                "F11",
	F12:                "F12",
	Unknown:            "Unknown",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// Modifiers is a bit set of the modifier keys held during a key press.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta

	ModNone Modifiers = 0
)

func (m Modifiers) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	for _, v := range [...]struct {
		mod  Modifiers
		name string
	}{
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModMeta, "Meta"},
	} {
		if m&v.mod != 0 {
			parts = append(parts, v.name)
		}
	}
	return strings.Join(parts, "+")
}
