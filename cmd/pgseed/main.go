package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgseed/internal/cli"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "pgseed: internal error: %v\n%s\n", r, debug.Stack())
			os.Exit(pgseed.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(pgseed.ExitCodeForError(err))
	}
}
