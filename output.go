package linedit

import (
	"bytes"
	"io"
	"strconv"
)

// Writer is the interface to write VT100 output to the terminal. Methods
// other than Flush only append to an internal buffer.
type Writer interface {
	// WriteRaw writes raw bytes, including escape sequences.
	WriteRaw(data []byte)
	// WriteString writes text, replacing control characters so they cannot
	// be interpreted by the terminal.
	WriteString(data string)
	// Flush writes the buffered output to the terminal.
	Flush() error

	// EraseDown erases the screen from the cursor down.
	EraseDown()
	// CursorGoTo moves the cursor to the given 0-based row and column.
	CursorGoTo(row, col int)
	// SaveCursor saves the current cursor position.
	SaveCursor()
	// UnSaveCursor restores the last saved cursor position.
	UnSaveCursor()
	// ScrollUp scrolls the screen content up by n lines.
	ScrollUp(n int)
	// AskForCPR requests a cursor position report.
	AskForCPR()
	// NewLine writes a carriage return and a line feed.
	NewLine()
}

// VT100Writer generates VT100 escape sequences, buffering them until Flush
// writes them to an io.Writer.
type VT100Writer struct {
	buffer []byte
	out    io.Writer
}

// NewVT100Writer returns a writer that flushes to out.
func NewVT100Writer(out io.Writer) *VT100Writer {
	return &VT100Writer{out: out}
}

func (w *VT100Writer) WriteRaw(data []byte) {
	w.buffer = append(w.buffer, data...)
}

func (w *VT100Writer) WriteRawString(data string) {
	w.buffer = append(w.buffer, data...)
}

func (w *VT100Writer) WriteString(data string) {
	w.buffer = append(w.buffer, sanitize(data)...)
}

// Flush writes buffered output to the underlying writer.
func (w *VT100Writer) Flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	_, err := w.out.Write(w.buffer)
	w.buffer = w.buffer[:0]
	return err
}

// Buffered returns output written since the last Flush.
func (w *VT100Writer) Buffered() []byte {
	return w.buffer
}

func (w *VT100Writer) EraseDown() {
	w.WriteRawString("\x1b[J")
}

func (w *VT100Writer) CursorGoTo(row, col int) {
	// VT100 coordinates are 1-based, and anything smaller clamps to 1
	row = max(row, 0) + 1
	col = max(col, 0) + 1
	w.buffer = append(w.buffer, 0x1b, '[')
	w.buffer = strconv.AppendInt(w.buffer, int64(row), 10)
	w.buffer = append(w.buffer, ';')
	w.buffer = strconv.AppendInt(w.buffer, int64(col), 10)
	w.buffer = append(w.buffer, 'H')
}

func (w *VT100Writer) SaveCursor() {
	w.WriteRawString("\x1b7")
}

func (w *VT100Writer) UnSaveCursor() {
	w.WriteRawString("\x1b8")
}

func (w *VT100Writer) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	w.buffer = append(w.buffer, 0x1b, '[')
	w.buffer = strconv.AppendInt(w.buffer, int64(n), 10)
	w.buffer = append(w.buffer, 'S')
}

func (w *VT100Writer) AskForCPR() {
	w.WriteRawString("\x1b[6n")
}

func (w *VT100Writer) NewLine() {
	w.WriteRawString("\r\n")
}

var _ Writer = &VT100Writer{}

func sanitize(s string) string {
	if !containsControl(s) {
		return s
	}
	var b bytes.Buffer
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func containsControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}
