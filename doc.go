/*
Package linedit is an interactive single-line editor for terminals.

A Prompt paints a prefix at the current cursor position, then lets the user
edit one line of text until Enter is pressed. Long lines wrap at the terminal
width, and the prompt keeps working when started near the bottom of the
screen, or after the terminal is resized.

	p, err := linedit.New("$ ")
	if err != nil {
		return err
	}
	line, err := p.Input()

Printable characters are inserted at the cursor. Left and Right move the
cursor, Backspace and Delete remove characters, and Shift+Right inserts a
fixed token (see WithDebugToken). Any other key ends the session with an
UnsupportedInputError.

Input is decoded from raw terminal bytes by a Decoder, and every screen
coordinate is derived from the Context of the session, see Context.Position.
*/
package linedit
