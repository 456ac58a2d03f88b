package linedit

// WinSize represents the width and height of the terminal.
type WinSize struct {
	Row uint16
	Col uint16
}

const (
	// DefColCount is the default number of columns, used when the terminal
	// size cannot be determined.
	DefColCount = 80
	// DefRowCount is the default number of rows, used when the terminal size
	// cannot be determined.
	DefRowCount = 25
)

// Reader is the interface to read input from the terminal.
//
// Read must not block indefinitely: when no input is available it should
// return an error other than io.EOF, after which the caller sleeps briefly
// and retries. io.EOF means the input is gone.
type Reader interface {
	// Open should be called before starting input, putting the terminal
	// into raw mode.
	Open() error
	// Close should be called after stopping input, restoring the terminal.
	Close() error
	// Read reads raw input bytes.
	Read(p []byte) (int, error)
	// GetWinSize returns the current size of the terminal.
	GetWinSize() *WinSize
}

// ResizeNotifier may be implemented by a Reader that reports terminal size
// changes itself, in place of SIGWINCH.
type ResizeNotifier interface {
	ResizeNotify() <-chan struct{}
}
