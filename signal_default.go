//go:build !unix

package linedit

import "syscall"

// terminal size changes are reported by the reader, see ResizeNotifier
const syscallSIGWINCH syscall.Signal = 0
