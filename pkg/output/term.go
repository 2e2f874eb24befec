package output

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TerminalWidth returns the column count of the terminal attached to f,
// or DefaultWidth when f is not a terminal
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
