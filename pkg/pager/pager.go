// Package pager displays captured comparator output through an external
// pager program.
package pager

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Pager displays the contents of a file
type Pager interface {
	Page(ctx context.Context, path string) error
}

// External runs "<Command> <Options...> <path>" attached to the process
// terminal. Secure mode sets LESSSECURE so the pager refuses shell
// escapes and opening other files.
type External struct {
	Command string
	Options []string
	Secure  bool

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExternal creates a secure external pager
func NewExternal(command string, options []string) *External {
	return &External{
		Command: command,
		Options: append([]string(nil), options...),
		Secure:  true,
	}
}

// Page runs the pager on path and waits for it to exit
func (p *External) Page(ctx context.Context, path string) error {
	args := make([]string, 0, len(p.Options)+1)
	args = append(args, p.Options...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, p.Command, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if p.Stdin != nil {
		cmd.Stdin = p.Stdin
	}
	if p.Stdout != nil {
		cmd.Stdout = p.Stdout
	}
	if p.Stderr != nil {
		cmd.Stderr = p.Stderr
	}
	cmd.Env = p.environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %s failed: %w", p.Command, err)
	}
	return nil
}

func (p *External) environ() []string {
	env := os.Environ()
	if p.Secure {
		env = append(env, "LESSSECURE=1")
	}
	return env
}
