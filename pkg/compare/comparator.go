package compare

import (
	"context"
	"fmt"
	"io"
)

// Result represents the outcome of comparing two files
type Result string

const (
	// Same indicates files are identical
	Same Result = "same"
	// Different indicates files differ
	Different Result = "different"
)

// Comparison holds the result of comparing two files
type Comparison struct {
	FileA  string
	FileB  string
	Result Result
	Reason string
}

// Comparator defines the interface for file comparison algorithms.
// A failed comparison is reported as an error, never as a Result.
type Comparator interface {
	// Compare compares two files and returns the result
	Compare(ctx context.Context, fileA, fileB string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}

// Differ writes a human-readable difference between two files to w
type Differ interface {
	Diff(ctx context.Context, fileA, fileB string, w io.Writer) error
}

// ComparisonError reports a comparator that could not decide whether
// two files are equal
type ComparisonError struct {
	Command  string
	FileA    string
	FileB    string
	ExitCode int // -1 when the comparator did not run to completion
	Stderr   string
	Err      error
}

func (e *ComparisonError) Error() string {
	msg := fmt.Sprintf("comparator %s failed on %s and %s", e.Command, e.FileA, e.FileB)
	switch {
	case e.ExitCode >= 0:
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ComparisonError) Unwrap() error {
	return e.Err
}
