package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeycumines/go-linedit"
)

func main() {
	p, err := linedit.New(">>> ")
	if err != nil {
		panic(err)
	}
	for {
		line, err := p.Input()
		if errors.Is(err, linedit.ErrInputClosed) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if line == "exit" {
			return
		}
		fmt.Println("Your input: " + line)
	}
}
