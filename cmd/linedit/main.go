// Command linedit reads a single line of input from the terminal, printing
// it to stdout. The prompt is drawn on stderr, so the output can be captured
// by a shell, e.g. NAME="$(linedit -prompt 'name: ')".
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeycumines/go-linedit"
	"github.com/joeycumines/go-linedit/debug"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("linedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	prefix := fs.String("prompt", "$ ", "text displayed before the input")
	token := fs.String("debug-token", "", "text inserted by Shift+Right (default 0123456789)")
	timeout := fs.Duration("cursor-timeout", time.Second, "how long to wait for the terminal to report the cursor position")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "linedit: unexpected arguments: %q\n", fs.Args())
		return 2
	}

	defer debug.Close()

	opts := []linedit.Option{linedit.WithCursorPositionTimeout(*timeout)}
	if *token != "" {
		opts = append(opts, linedit.WithDebugToken(*token))
	}
	p, err := linedit.New(*prefix, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	line, err := p.Input()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, line)
	return 0
}
