// Package termtest drives terminal programs through a real pseudo-terminal,
// for tests.
//
// A Console wraps the master side of a pty, recording everything the program
// writes, and answering cursor position requests (ESC [ 6 n) the way a
// terminal would. It can either start an external process (NewConsole), or
// back an in-process linedit.Prompt (NewHarness).
//
// Assertions are made against output produced since a Snapshot:
//
//	snap := h.Console().Snapshot()
//	_ = h.Console().Send("left")
//	err := h.Console().Expect(ctx, snap, ContainsRaw("\x1b["), "cursor move")
//
// The package is only available on unix.
package termtest
