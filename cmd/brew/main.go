// Command brew is the Brew language CLI: it runs .brew source files through
// the interpreter in package github.com/brewlang/brew/pkg/brew.
package main

import (
	"fmt"
	"os"

	"github.com/brewlang/brew/cmd/brew/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
