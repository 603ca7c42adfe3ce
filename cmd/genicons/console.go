package main

import (
	"os"

	"golang.org/x/term"

	"github.com/Mavwarf/exticons/internal/icon"
)

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// consoleMarks colors the status glyphs when f is an interactive terminal
// and NO_COLOR is unset.
func consoleMarks(f *os.File) icon.Marks {
	color := term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
	return marksFor(color)
}

func marksFor(color bool) icon.Marks {
	if !color {
		return icon.DefaultMarks
	}
	return icon.Marks{
		OK:   ansiGreen + icon.DefaultMarks.OK + ansiReset,
		Fail: ansiRed + icon.DefaultMarks.Fail + ansiReset,
	}
}
