package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/sdejongh/cmpgroups/pkg/compare"
	"github.com/sdejongh/cmpgroups/pkg/group"
	"github.com/sdejongh/cmpgroups/pkg/logging"
	"github.com/sdejongh/cmpgroups/pkg/output"
	"github.com/sdejongh/cmpgroups/pkg/pager"
)

// DefaultPrompt is printed before every command read
const DefaultPrompt = "cmpgroups> "

// maxLineSize bounds a single command line
const maxLineSize = 1024 * 1024

// Options configures a Session
type Options struct {
	Differ compare.Differ
	Pager  pager.Pager
	Out    io.Writer
	Width  int
	Prompt string
	Logger logging.Logger

	// TempDir holds diff output files; empty means the system default
	TempDir string
}

// Session is the interactive state over a finished grouping.
// The base group index is the only state that changes after New.
type Session struct {
	id      string
	groups  *group.Collection
	base    int
	differ  compare.Differ
	pager   pager.Pager
	out     io.Writer
	width   int
	prompt  string
	tempDir string
	logger  logging.Logger
}

// New creates a session over coll. The base group starts at the
// largest group with the lowest index.
func New(coll *group.Collection, opts Options) *Session {
	id := uuid.New().String()

	s := &Session{
		id:      id,
		groups:  coll,
		base:    coll.InitialBase(),
		differ:  opts.Differ,
		pager:   opts.Pager,
		out:     opts.Out,
		width:   opts.Width,
		prompt:  opts.Prompt,
		tempDir: opts.TempDir,
	}

	if s.out == nil {
		s.out = os.Stdout
	}
	if s.width == 0 {
		s.width = output.DefaultWidth
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	s.logger = logger.WithFields(logging.Fields{"session": id})

	return s
}

// ID returns the session identifier attached to every log entry
func (s *Session) ID() string {
	return s.id
}

// Base returns the current base group index
func (s *Session) Base() int {
	return s.base
}

// Run reads commands from in until quit or end of input. Command errors
// are reported on the output and never end the loop; only a read
// failure is returned.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.logger.Info(ctx, "session started", logging.Fields{
		"groups": s.groups.Len(),
		"files":  s.groups.FileCount,
		"base":   s.base,
	})

	output.Listing(s.out, s.groups, s.base, s.width)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for {
		fmt.Fprint(s.out, s.prompt)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				s.logger.Error(ctx, "failed to read command", err, nil)
				return fmt.Errorf("failed to read command: %w", err)
			}
			// End of input: leave the shell prompt on a fresh line
			fmt.Fprintln(s.out)
			s.logger.Info(ctx, "session ended", logging.Fields{"reason": "eof"})
			return nil
		}

		if s.Execute(ctx, scanner.Text()) {
			s.logger.Info(ctx, "session ended", logging.Fields{"reason": "quit"})
			return nil
		}
	}
}

// Execute runs one command line and reports whether the session should end
func (s *Session) Execute(ctx context.Context, line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}

	cmd, ok := ParseCommand(words[0])
	if !ok {
		output.Warn(s.out, "unrecognized command: %s (type help for a list)", words[0])
		return false
	}

	args := words[1:]
	s.logger.Debug(ctx, "command", logging.Fields{"command": cmd.String(), "args": args})

	switch cmd {
	case CmdBase:
		s.cmdBase(ctx, args)
	case CmdDiff:
		s.cmdDiff(ctx, args)
	case CmdList:
		s.cmdList(args)
	case CmdView:
		output.Listing(s.out, s.groups, s.base, s.width)
	case CmdHelp:
		fmt.Fprint(s.out, helpText)
	case CmdWhat:
		s.cmdWhat(args)
	case CmdQuit:
		fmt.Fprintln(s.out, "bye.")
		return true
	}
	return false
}

func (s *Session) cmdBase(ctx context.Context, args []string) {
	if len(args) != 1 {
		output.Warn(s.out, "usage: base GROUP")
		return
	}

	index, err := s.Resolve(args[0])
	if err != nil {
		output.Warn(s.out, "%v", err)
		return
	}

	if index != s.base {
		s.logger.Info(ctx, "base group changed", logging.Fields{"from": s.base, "to": index})
	}
	s.base = index
	output.Listing(s.out, s.groups, s.base, s.width)
}

func (s *Session) cmdDiff(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		output.Warn(s.out, "usage: diff GROUP [GROUP]")
		return
	}

	a, err := s.Resolve(args[0])
	if err != nil {
		output.Warn(s.out, "%v", err)
		return
	}

	b := s.base
	if len(args) == 2 {
		b, err = s.Resolve(args[1])
		if err != nil {
			output.Warn(s.out, "%v", err)
			return
		}
	}

	if err := s.showDiff(ctx, a, b); err != nil {
		s.logger.Error(ctx, "diff failed", err, logging.Fields{"group_a": a, "group_b": b})
		output.Fail(s.out, "diff failed: %v", err)
	}
}

// showDiff writes the comparator output for the representatives of
// groups a and b to a temporary file and pages it. The file is removed
// on every return path.
func (s *Session) showDiff(ctx context.Context, a, b int) error {
	if s.differ == nil || s.pager == nil {
		return fmt.Errorf("diff is not available in this session")
	}

	tmp, err := os.CreateTemp(s.tempDir, "cmpgroups-diff-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	fileA := s.groups.Groups[a].Representative()
	fileB := s.groups.Groups[b].Representative()

	if err := s.differ.Diff(ctx, fileA, fileB, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write diff output: %w", err)
	}

	if err := s.pager.Page(ctx, tmp.Name()); err != nil {
		return fmt.Errorf("failed to run pager: %w", err)
	}

	s.summarizeDiff(tmp.Name())
	return nil
}

// summarizeDiff prints a hunk and line count when the comparator wrote
// a unified diff
func (s *Session) summarizeDiff(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if stat, ok := compare.ParseDiffStat(f); ok {
		output.Notice(s.out, "%d hunk(s), +%d -%d line(s)", stat.Hunks, stat.Added, stat.Removed)
	}
}

func (s *Session) cmdList(args []string) {
	for _, spec := range args {
		index, err := s.Resolve(spec)
		if err != nil {
			output.Warn(s.out, "%v", err)
			continue
		}
		output.Members(s.out, s.groups.Groups[index], index)
	}
}

func (s *Session) cmdWhat(args []string) {
	for _, spec := range args {
		index, err := s.Resolve(spec)
		if err != nil {
			output.Warn(s.out, "%v", err)
			continue
		}
		fmt.Fprintf(s.out, "%s -> %d\n", spec, index)
	}
}
