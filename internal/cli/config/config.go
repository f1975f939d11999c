// Package config implements the 'gamecfg config' command family.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/config"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd(g *helpers.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gamecfg configuration",
		Long: `Inspect gamecfg configuration.

Configuration Priority:
  1. Command line flags (--backend, --timeout, --log-level) (highest)
  2. Environment variables (GAMECFG_*), including a .env file
  3. Config file (~/.gamecfg/config.yaml)
  4. Built-in defaults

Environment Variables:
  GAMECFG_CONFIG   Override the base directory (default: ~)`,
	}

	cmd.AddCommand(newShowCmd(g))
	cmd.AddCommand(newPathCmd(g))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newInitCmd(g))

	return cmd
}

var showFormats = []helpers.OutputFormat{
	helpers.FormatYAML,
	helpers.FormatJSON,
}

// newShowCmd creates the 'config show' command.
func newShowCmd(g *helpers.GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults, the config file, environment
variables and flags have been merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, showFormats); err != nil {
				return err
			}

			cfg, _, err := helpers.LoadConfig(cmd, g)
			if err != nil {
				return err
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(cfg, cmd.OutOrStdout())
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatYAML, showFormats)

	return cmd
}

// newPathCmd creates the 'config path' command.
func newPathCmd(g *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			path := configPath(loader, g)

			state := "present"
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				state = "not present"
			}

			// The log path may come from the config itself; fall back to
			// defaults when the file cannot be loaded.
			cfg, err := loader.LoadFile(path)
			if err != nil {
				cfg = nil
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "config: %s (%s)\n", path, state)
			_, err = fmt.Fprintf(out, "log:    %s\n", loader.LogPath(cfg))
			return err
		},
	}
}

// newSchemaCmd creates the 'config schema' command.
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Long: `Print the JSON schema of ~/.gamecfg/config.yaml. Point a YAML language
server at it for completion and validation in editors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.JSONSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

// newValidateCmd creates the 'config validate' command.
func newValidateCmd(g *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Load the configuration and report every problem found.

Checks:
- backend.url is an absolute http or https URL
- backend.timeout is not negative
- export.filename is a bare file name
- logging.level is a known level`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := helpers.LoadConfig(cmd, g); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", configPath(config.NewLoader(), g))
			return err
		},
	}
}

// newInitCmd creates the 'config init' command.
func newInitCmd(g *helpers.GlobalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			path := configPath(loader, g)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if cmd.Flags().Changed("backend") {
				cfg.Backend.URL = g.BackendURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if err := loader.SaveFile(path, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func configPath(loader *config.Loader, g *helpers.GlobalOptions) string {
	if g.ConfigFile != "" {
		return g.ConfigFile
	}
	return loader.ConfigPath()
}
