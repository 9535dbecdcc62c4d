package ui

import (
	"os"

	"golang.org/x/term"
)

// Mode is the interaction mode of the current process.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode returns ModeNonInteractive when PGSEED_NON_INTERACTIVE=1 or CI
// is set, or when stdin or stderr is not a terminal.
func DetectMode() Mode {
	if os.Getenv("PGSEED_NON_INTERACTIVE") == "1" || os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
