// Package ask provides the one-shot ask command.
package ask

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/cli/helpers"
)

// NewAskCmd creates the ask command.
func NewAskCmd(g *helpers.GlobalOptions) *cobra.Command {
	var (
		jsonOutput   bool
		showThoughts bool
	)

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send one message to the game-config service",
		Long: `Send a single chat message and print the reply.

The arguments are joined with spaces into one message. The conversation
continues on the service side, so consecutive asks build on each other.

Examples:
  gamecfg ask "I want a top-down shooter"
  gamecfg ask make enemies tougher --thoughts
  gamecfg ask "what did you change?" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := helpers.LoadConfig(cmd, g)
			if err != nil {
				return err
			}

			logger := helpers.NewLogger(cfg, cmd.ErrOrStderr(), "ask")
			client, err := helpers.NewBackendClient(cfg, logger)
			if err != nil {
				return err
			}

			message := strings.Join(args, " ")
			reply, err := client.Chat(cmd.Context(), message)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, reply, showThoughts)
			}

			markdown := cfg.Chat.RenderMarkdown && isTerminal(out)
			return writeText(out, reply, showThoughts, markdown)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the reply as JSON")
	cmd.Flags().BoolVar(&showThoughts, "thoughts", false, "Include the service's reasoning when it sends one")

	return cmd
}

func writeJSON(w io.Writer, reply *backend.Reply, showThoughts bool) error {
	out := *reply
	if !showThoughts {
		out.Thoughts = ""
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, reply *backend.Reply, showThoughts, markdown bool) error {
	if showThoughts && reply.Thoughts != "" {
		if _, err := fmt.Fprintf(w, "Thoughts:\n%s\n\n", strings.TrimSpace(reply.Thoughts)); err != nil {
			return err
		}
	}

	text := reply.Response
	if markdown {
		rendered, err := glamour.Render(text, "auto")
		if err == nil {
			_, err = fmt.Fprint(w, rendered)
			return err
		}
	}

	_, err := fmt.Fprintln(w, text)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && helpers.IsTerminal(f)
}
