package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"cmdr/scripts/check-style-tokens/config"
)

// useColor resolves a color mode for output going to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(w)
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
