// Package cli wires the gamecfg command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/cli/ask"
	"github.com/gamecfg/gamecfg/internal/cli/chat"
	configcmd "github.com/gamecfg/gamecfg/internal/cli/config"
	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/cli/state"
	"github.com/gamecfg/gamecfg/pkg/version"
)

// NewRootCmd builds the gamecfg command tree. Running it without a
// subcommand opens the chat.
func NewRootCmd() *cobra.Command {
	g := &helpers.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gamecfg",
		Short: "Game-Config Chat - tune game parameters by talking to them",
		Long: `Chat with a game-config service to design a game and tune its parameters,
then download the result as game_params.json.

Running gamecfg without a subcommand opens the chat.

Common commands:
- gamecfg chat      Interactive chat (default)
- gamecfg ask       Send one message and print the reply
- gamecfg export    Save the current parameters to game_params.json
- gamecfg state     List the current parameters
- gamecfg status    Check the service and the export file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return chat.Run(cmd, g, false)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	helpers.AddGlobalFlags(rootCmd.PersistentFlags(), g)

	rootCmd.AddCommand(chat.NewChatCmd(g))
	rootCmd.AddCommand(ask.NewAskCmd(g))
	rootCmd.AddCommand(state.NewExportCmd(g))
	rootCmd.AddCommand(state.NewStateCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(configcmd.NewConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("gamecfg version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
