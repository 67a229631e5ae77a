package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor reports whether stdout should receive ANSI colors.
// NO_COLOR wins over everything, then CLICOLOR_FORCE=1, then CLICOLOR=0,
// and otherwise color is on only for a terminal.
func ShouldUseColor() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case envFlag("CLICOLOR_FORCE") == "1":
		return true
	case envFlag("CLICOLOR") == "0":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func envFlag(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
