package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/sdejongh/cmpgroups/pkg/config"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with the flags set on cmd
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("comparator") {
		cfg.Comparator.Command = groupFlags.Comparator
	}
	if flags.Changed("diff-opts") {
		cfg.Comparator.Options = splitOptions(groupFlags.DiffOpts)
	}
	if flags.Changed("method") {
		cfg.Comparator.Method = groupFlags.Method
	}

	// The pager flag is split like a shell word list so options may be quoted
	if flags.Changed("pager") {
		fields, err := shell.Fields(groupFlags.Pager, os.Getenv)
		if err != nil {
			return fmt.Errorf("invalid pager command %q: %w", groupFlags.Pager, err)
		}
		if len(fields) == 0 {
			cfg.Pager.Command = ""
		} else {
			cfg.Pager.Command = fields[0]
			cfg.Pager.Options = fields[1:]
		}
	}

	if flags.Changed("width") {
		cfg.Display.Width = groupFlags.Width
	}

	// Exclude patterns
	if len(groupFlags.Exclude) > 0 {
		cfg.Exclude = groupFlags.Exclude
	}

	if flags.Changed("report-format") {
		cfg.Output.ReportFormat = groupFlags.ReportFormat
	}
	if groupFlags.NoProgress {
		cfg.Output.Progress = false
	}

	if flags.Changed("log-file") {
		cfg.Logging.File = groupFlags.LogFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = groupFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = groupFlags.LogLevel
	}

	return nil
}

// splitOptions splits every value on whitespace, so "-o '-u -w'" and
// "-o -u -o -w" both give [-u -w]
func splitOptions(values []string) []string {
	options := []string{}
	for _, v := range values {
		options = append(options, strings.Fields(v)...)
	}
	return options
}
