// Package term puts a terminal into raw mode for the lifetime of a guard
// value, restoring the saved state when the guard is released.
//
// It is only implemented for unix; on Windows the console mode is managed by
// the reader itself.
package term
