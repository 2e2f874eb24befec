package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/cmpgroups/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the cmpgroups configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Comparator: %s %s\n", cfg.Comparator.Command, strings.Join(cfg.Comparator.Options, " "))
			fmt.Fprintf(out, "Method: %s\n", cfg.Comparator.Method)
			fmt.Fprintf(out, "Pager: %s %s\n", cfg.Pager.Command, strings.Join(cfg.Pager.Options, " "))
			fmt.Fprintf(out, "Secure Pager: %t\n", cfg.Pager.Secure)
			fmt.Fprintf(out, "Width: %d\n", cfg.Display.Width)
			fmt.Fprintf(out, "Progress: %t\n", cfg.Output.Progress)
			fmt.Fprintf(out, "Report Format: %s\n", cfg.Output.ReportFormat)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "Exclude: %s\n", strings.Join(cfg.Exclude, ", "))

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalFlags.ConfigFile
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}
}
