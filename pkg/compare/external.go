package compare

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Exit statuses of a diff-style comparator
const (
	exitSame      = 0
	exitDifferent = 1
)

// ExternalComparator delegates comparison to a diff-style program invoked
// as "<command> <options...> <fileA> <fileB>". Exit status 0 means the
// files are the same, 1 means they differ; anything else is an error.
type ExternalComparator struct {
	command string
	options []string
}

// NewExternalComparator creates a comparator running command with options
func NewExternalComparator(command string, options []string) *ExternalComparator {
	return &ExternalComparator{
		command: command,
		options: append([]string(nil), options...),
	}
}

// Options returns a copy of the options passed to every invocation
func (c *ExternalComparator) Options() []string {
	return append([]string(nil), c.options...)
}

// Compare runs the comparator with its output discarded
func (c *ExternalComparator) Compare(ctx context.Context, fileA, fileB string) (*Comparison, error) {
	status, err := c.run(ctx, fileA, fileB, nil)
	if err != nil {
		return nil, err
	}

	comparison := &Comparison{FileA: fileA, FileB: fileB}
	if status == exitSame {
		comparison.Result = Same
		comparison.Reason = c.command + " reported no differences"
	} else {
		comparison.Result = Different
		comparison.Reason = c.command + " reported differences"
	}
	return comparison, nil
}

// Diff runs the comparator with its standard output written to w
func (c *ExternalComparator) Diff(ctx context.Context, fileA, fileB string, w io.Writer) error {
	_, err := c.run(ctx, fileA, fileB, w)
	return err
}

// Name returns the comparator name
func (c *ExternalComparator) Name() string {
	return "external:" + c.command
}

// run executes the comparator and maps its exit status. A nil stdout
// sends the output to the null device.
func (c *ExternalComparator) run(ctx context.Context, fileA, fileB string, stdout io.Writer) (int, error) {
	args := make([]string, 0, len(c.options)+2)
	args = append(args, c.options...)
	args = append(args, fileA, fileB)

	cmd := exec.CommandContext(ctx, c.command, args...)

	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return exitSame, nil
	}

	compErr := &ComparisonError{
		Command:  c.command,
		FileA:    fileA,
		FileB:    fileB,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == exitDifferent {
			return exitDifferent, nil
		}
		compErr.ExitCode = code
	}

	return compErr.ExitCode, compErr
}
