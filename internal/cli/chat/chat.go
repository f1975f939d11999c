// Package chat provides the chat command: the full-screen chat view and a
// line-mode fallback for pipes and dumb terminals.
package chat

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/helpers"
)

// NewChatCmd creates the chat command.
func NewChatCmd(g *helpers.GlobalOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the game-config service",
		Long: `Open an interactive chat with the game-config service.

Describe the game you want and the service tunes its parameters. Replies
appear as they arrive; only one message is in flight at a time.

Keys:
  enter    Send the message
  ctrl+s   Download the current parameters to game_params.json
  ctrl+c   Quit

Inline commands: /export, /help, /exit.

When stdin or stdout is not a terminal, or with --plain, a line-mode prompt
is used instead of the full-screen view.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, g, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Use the line-mode prompt instead of the full-screen view")

	return cmd
}

// Run starts a chat session for cmd.
func Run(cmd *cobra.Command, g *helpers.GlobalOptions, plain bool) error {
	cfg, loader, err := helpers.LoadConfig(cmd, g)
	if err != nil {
		return err
	}

	if plain || !helpers.IsTerminal(os.Stdin) || !helpers.IsTerminal(os.Stdout) {
		return runPlain(cmd.Context(), cfg)
	}
	return runInteractive(cfg, loader)
}
