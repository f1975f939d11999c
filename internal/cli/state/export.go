package state

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/export"
)

// NewExportCmd creates the export command.
func NewExportCmd(g *helpers.GlobalOptions) *cobra.Command {
	var (
		dir       string
		filename  string
		ifChanged bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the game parameters to game_params.json",
		Long: `Fetch the current state from the game-config service and save it,
indented with two spaces, as game_params.json in the export directory.

An existing file is replaced without confirmation. With --if-changed the
file is left untouched when its content already matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := helpers.LoadConfig(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Export.Dir = dir
			}
			if cmd.Flags().Changed("filename") {
				cfg.Export.Filename = filename
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := helpers.NewLogger(cfg, cmd.ErrOrStderr(), "export")
			client, err := helpers.NewBackendClient(cfg, logger)
			if err != nil {
				return err
			}

			res, err := export.Download(cmd.Context(), client, helpers.NewExporter(cfg), ifChanged)
			if err != nil {
				return fmt.Errorf("failed to download state: %w", err)
			}

			logger.Debug().
				Str("path", res.Path).
				Uint64("digest", res.Digest).
				Bool("skipped", res.Skipped).
				Msg("Export finished")

			out := cmd.OutOrStdout()
			if res.Skipped {
				_, err = fmt.Fprintf(out, "Unchanged %s\n", res.Path)
				return err
			}
			_, err = fmt.Fprintf(out, "Saved %s (%d bytes)\n", res.Path, res.Bytes)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write to (default: export.dir, the current directory)")
	cmd.Flags().StringVar(&filename, "filename", "", "File name (default: export.filename, game_params.json)")
	cmd.Flags().BoolVar(&ifChanged, "if-changed", false, "Skip writing when the file already holds the same content")

	return cmd
}
