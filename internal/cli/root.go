package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/cmpgroups/pkg/compare"
	"github.com/sdejongh/cmpgroups/pkg/config"
	"github.com/sdejongh/cmpgroups/pkg/group"
	"github.com/sdejongh/cmpgroups/pkg/logging"
	"github.com/sdejongh/cmpgroups/pkg/output"
	"github.com/sdejongh/cmpgroups/pkg/pager"
	"github.com/sdejongh/cmpgroups/pkg/session"
	"github.com/sdejongh/cmpgroups/pkg/storage"
)

// NewRootCommand creates the cmpgroups command: group FILE... by content
// and start an interactive session over the groups
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmpgroups [flags] FILE...",
		Short: "Group files by identical content and explore the differences",
		Long: `cmpgroups compares the given files with an external comparator (diff by
default), puts files with identical content into the same group and then
reads commands to list groups and page diffs between them.

Type help at the cmpgroups> prompt for the list of commands.`,
		Args:          cobra.ArbitraryArgs,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGroups,
	}

	AddGlobalFlags(cmd)
	addGroupFlags(cmd)

	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func runGroups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 {
		cmd.Usage()
		return &UsageError{Message: "no input files"}
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if err := applyFlagsToConfig(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files := group.Filter(args, cfg.Exclude)
	if len(files) == 0 {
		cmd.Usage()
		return &UsageError{Message: "no input files left after exclusion"}
	}

	// Create logger
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend, err := storage.NewLocal("")
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer backend.Close()

	// The external comparator always produces the diffs; it also groups
	// unless the binary method is selected
	external := compare.NewExternalComparator(cfg.Comparator.Command, cfg.Comparator.Options)

	var comparator compare.Comparator
	switch cfg.Comparator.Method {
	case config.MethodBinary:
		comparator = compare.NewBinaryComparator(backend, cfg.Comparator.BufferSize)
	default:
		comparator = external
	}

	logger.Info(ctx, "grouping started", logging.Fields{
		"files":      len(files),
		"comparator": comparator.Name(),
	})

	coll, err := buildGroups(ctx, files, comparator, backend, logger, cfg.Output.Progress, cmd.ErrOrStderr())
	if err != nil {
		logger.Error(ctx, "grouping failed", err, nil)
		return err
	}

	// Write group report if requested
	if groupFlags.Report != "" {
		info := output.ReportInfo{
			Comparator: comparator.Name(),
			Generated:  time.Now(),
			Sizes:      groupSizes(ctx, backend, coll),
		}
		if err := output.WriteGroupReport(coll, info, groupFlags.Report, cfg.Output.ReportFormat); err != nil {
			return fmt.Errorf("failed to write group report: %w", err)
		}
	}

	width := cfg.Display.Width
	if width == 0 {
		width = output.TerminalWidth(os.Stdout)
	}

	viewer := pager.NewExternal(cfg.Pager.Command, cfg.Pager.Options)
	viewer.Secure = cfg.Pager.Secure

	s := session.New(coll, session.Options{
		Differ: external,
		Pager:  viewer,
		Out:    cmd.OutOrStdout(),
		Width:  width,
		Prompt: cfg.Display.Prompt,
		Logger: logger,
	})

	return s.Run(ctx, cmd.InOrStdin())
}

// buildGroups runs the grouping engine, with a progress bar on stderr
// when it is a terminal and progress is enabled
func buildGroups(ctx context.Context, files []string, cmp compare.Comparator, backend storage.Backend,
	logger logging.Logger, progress bool, stderr io.Writer) (*group.Collection, error) {

	opts := []group.Option{
		group.WithBackend(backend),
		group.WithLogger(logger),
	}

	var bar *output.Progress
	if f, ok := stderr.(*os.File); ok && progress && output.IsTerminal(f) {
		bar = output.NewProgress(f, len(files))
		opts = append(opts, group.WithProgress(bar.Update))
	}

	coll, err := group.Build(ctx, files, cmp, opts...)
	bar.Finish()
	return coll, err
}

// groupSizes returns the content size of each group, or nil when a
// representative can no longer be read
func groupSizes(ctx context.Context, backend storage.Backend, coll *group.Collection) []int64 {
	sizes := make([]int64, 0, coll.Len())
	for _, g := range coll.Groups {
		info, err := backend.Stat(ctx, g.Representative())
		if err != nil {
			return nil
		}
		sizes = append(sizes, info.Size)
	}
	return sizes
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	// Create file logger
	fileConfig := logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     logging.ParseFormat(cfg.Format),
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(fileConfig)
}
