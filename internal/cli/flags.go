package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared by every command
type GlobalFlags struct {
	ConfigFile string
}

// GroupFlags holds flags of the grouping command
type GroupFlags struct {
	DiffOpts     []string
	Comparator   string
	Method       string
	Pager        string
	Width        int
	Exclude      []string
	Report       string
	ReportFormat string
	NoProgress   bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var (
	globalFlags GlobalFlags
	groupFlags  GroupFlags
)

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/cmpgroups/config.yaml)",
	)
}

// addGroupFlags adds the grouping and session flags to cmd
func addGroupFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&groupFlags.DiffOpts, "diff-opts", "o", nil, "comparator options, split on whitespace (repeatable)")
	cmd.Flags().StringVar(&groupFlags.Comparator, "comparator", "diff", "comparator command")
	cmd.Flags().StringVar(&groupFlags.Method, "method", "external", "grouping method: external, binary")
	cmd.Flags().StringVar(&groupFlags.Pager, "pager", "less", "pager command, optionally followed by its options")
	cmd.Flags().IntVar(&groupFlags.Width, "width", 0, "display width (0 = detect terminal, fallback 80)")
	cmd.Flags().StringSliceVar(&groupFlags.Exclude, "exclude", []string{}, "glob patterns of input files to skip")
	cmd.Flags().StringVar(&groupFlags.Report, "report", "", "write group report to file after grouping (- for stdout)")
	cmd.Flags().StringVar(&groupFlags.ReportFormat, "report-format", "human", "group report format: human, json")
	cmd.Flags().BoolVar(&groupFlags.NoProgress, "no-progress", false, "disable the grouping progress bar")

	// Logging flags
	cmd.Flags().StringVar(&groupFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&groupFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&groupFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
