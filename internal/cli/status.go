package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/cli/status"
)

// statusTimeout bounds the /state probe when no --timeout is configured.
const statusTimeout = 5 * time.Second

// newStatusCmd creates the status command.
func newStatusCmd(g *helpers.GlobalOptions) *cobra.Command {
	var (
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend and export status",
		Long: `Display a short overview of the gamecfg environment.

This command provides a quick view of:
- Whether the game-config service is reachable
- The chosen game type and how many parameters were tuned
- Whether the local export file matches the current state`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, statusFormats); err != nil {
				return err
			}

			cfg, _, err := helpers.LoadConfig(cmd, g)
			if err != nil {
				return err
			}

			client, err := helpers.NewBackendClient(cfg, helpers.NewLogger(cfg, cmd.ErrOrStderr(), "status"))
			if err != nil {
				return err
			}

			timeout := cfg.Backend.Timeout
			if timeout == 0 {
				timeout = statusTimeout
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			info := status.NewProvider(client, helpers.NewExporter(cfg), client.BaseURL()).Query(ctx)

			formatter := status.NewFormatter(cmd.OutOrStdout())
			if format != string(helpers.FormatTable) {
				return formatter.OutputJSON(info)
			}
			return formatter.OutputTable(info, verbose)
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, statusFormats)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the state digest")

	return cmd
}

var statusFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
}
