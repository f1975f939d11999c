// Package state provides the commands that read the game-config state:
// state lists the parameters and export saves them to game_params.json.
package state

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/gamestate"
)

var stateFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatCSV,
}

// NewStateCmd creates the state command.
func NewStateCmd(g *helpers.GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the current game parameters",
		Long: `Fetch the current state from the game-config service and print it.

Table and CSV output list one parameter per row. JSON output prints the
document exactly as the service sent it, indented. When the service returns
a layout this client does not recognize, the JSON document is printed
instead of a table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, stateFormats); err != nil {
				return err
			}

			cfg, _, err := helpers.LoadConfig(cmd, g)
			if err != nil {
				return err
			}

			client, err := helpers.NewBackendClient(cfg, helpers.NewLogger(cfg, cmd.ErrOrStderr(), "state"))
			if err != nil {
				return err
			}

			raw, err := client.State(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch state: %w", err)
			}

			out := cmd.OutOrStdout()
			pretty, err := export.Pretty(raw)
			if err != nil {
				return err
			}

			if format == string(helpers.FormatJSON) {
				_, err := fmt.Fprintln(out, string(pretty))
				return err
			}

			st, err := gamestate.Parse(raw)
			if errors.Is(err, gamestate.ErrUnknownLayout) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Unrecognized state layout, showing the raw document.")
				_, err := fmt.Fprintln(out, string(pretty))
				return err
			}
			if err != nil {
				return err
			}

			if format == string(helpers.FormatTable) {
				if st.Chosen() {
					_, _ = fmt.Fprintf(out, "Game mode: %s (%d of %d parameters tuned)\n\n", st.GameMode, st.Tuned(), len(st.Params))
				} else {
					_, _ = fmt.Fprintln(out, "No game type chosen yet.")
				}
				if len(st.Params) == 0 {
					return nil
				}
			}

			formatter, err := helpers.NewFormatter(helpers.OutputFormat(format))
			if err != nil {
				return err
			}
			return formatter.Format(st.Rows(), out)
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, stateFormats)

	return cmd
}
