//go:build windows

package linedit

import (
	colorable "github.com/mattn/go-colorable"
)

// WindowsWriter is a Writer implementation for the Win32 console, translating
// escape sequences for consoles that do not support them natively.
type WindowsWriter struct {
	VT100Writer
}

var _ Writer = &WindowsWriter{}

// NewStderrWriter returns Writer object to write to stderr.
func NewStderrWriter() *WindowsWriter {
	return &WindowsWriter{
		VT100Writer: VT100Writer{
			out: colorable.NewColorableStderr(),
		},
	}
}
