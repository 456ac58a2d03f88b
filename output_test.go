package linedit

import (
	"bytes"
	"testing"
)

func TestVT100Writer(t *testing.T) {
	tests := map[string]struct {
		write func(w *VT100Writer)
		want  string
	}{
		"cursor go to is 1-based": {
			write: func(w *VT100Writer) { w.CursorGoTo(0, 0) },
			want:  "\x1b[1;1H",
		},
		"cursor go to": {
			write: func(w *VT100Writer) { w.CursorGoTo(11, 39) },
			want:  "\x1b[12;40H",
		},
		"cursor go to negative": {
			write: func(w *VT100Writer) { w.CursorGoTo(-3, 4) },
			want:  "\x1b[1;5H",
		},
		"save and restore": {
			write: func(w *VT100Writer) {
				w.SaveCursor()
				w.UnSaveCursor()
			},
			want: "\x1b7\x1b8",
		},
		"scroll up": {
			write: func(w *VT100Writer) { w.ScrollUp(3) },
			want:  "\x1b[3S",
		},
		"scroll up zero": {
			write: func(w *VT100Writer) { w.ScrollUp(0) },
			want:  "",
		},
		"erase down": {
			write: func(w *VT100Writer) { w.EraseDown() },
			want:  "\x1b[J",
		},
		"cursor position request": {
			write: func(w *VT100Writer) { w.AskForCPR() },
			want:  "\x1b[6n",
		},
		"new line": {
			write: func(w *VT100Writer) { w.NewLine() },
			want:  "\r\n",
		},
		"write string sanitizes": {
			write: func(w *VT100Writer) { w.WriteString("a\x1b[2Jb\n") },
			want:  "a?[2Jb?",
		},
		"write raw": {
			write: func(w *VT100Writer) { w.WriteRaw([]byte("\x1b[2J")) },
			want:  "\x1b[2J",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			w := NewVT100Writer(&out)
			tc.write(w)
			if got := string(w.Buffered()); got != tc.want {
				t.Errorf("Buffered() = %q, want %q", got, tc.want)
			}
			if out.Len() != 0 {
				t.Errorf("wrote %q before Flush", out.String())
			}
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := out.String(); got != tc.want {
				t.Errorf("flushed %q, want %q", got, tc.want)
			}
			if len(w.Buffered()) != 0 {
				t.Error("buffer not reset by Flush")
			}
		})
	}
}
