//go:build unix

package linedit

import "syscall"

const syscallSIGWINCH = syscall.SIGWINCH
