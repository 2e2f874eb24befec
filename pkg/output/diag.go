package output

import (
	"io"

	"github.com/fatih/color"
)

// Colors follow color.NoColor, which is set when stdout is not a terminal
// or NO_COLOR is present in the environment.
var (
	headerColor = color.New(color.Bold)
	noticeColor = color.New(color.FgCyan)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
)

// Notice writes an informational diagnostic line
func Notice(w io.Writer, format string, args ...interface{}) {
	noticeColor.Fprintf(w, format+"\n", args...)
}

// Warn writes a diagnostic line for a rejected command or group spec
func Warn(w io.Writer, format string, args ...interface{}) {
	warnColor.Fprintf(w, format+"\n", args...)
}

// Fail writes an error diagnostic line
func Fail(w io.Writer, format string, args ...interface{}) {
	errorColor.Fprintf(w, format+"\n", args...)
}
