package chat

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamecfg/gamecfg/internal/cli/chat/ui"
	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/config"
	"github.com/gamecfg/gamecfg/internal/errors"
	"github.com/gamecfg/gamecfg/internal/logging"
)

// runInteractive starts the Bubbletea chat view. The view owns the terminal,
// so logs go to a rotating file.
func runInteractive(cfg *config.Config, loader *config.Loader) error {
	logPath := loader.LogPath(cfg)
	logFile, err := logging.RotatingFile(logPath)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Output: logFile,
	})
	defer errors.DeferClose(logger, logFile, "Failed to close log file")

	client, err := helpers.NewBackendClient(cfg, logger)
	if err != nil {
		return err
	}

	model, err := ui.NewModel(client, ui.Options{
		BackendURL:     client.BaseURL(),
		Exporter:       helpers.NewExporter(cfg),
		RenderMarkdown: cfg.Chat.RenderMarkdown,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create UI model: %w", err)
	}

	var opts []tea.ProgramOption
	if cfg.Chat.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	logger.Info().
		Str("backend", client.BaseURL()).
		Str("log_file", logPath).
		Msg("Starting chat session")

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}

	logger.Info().Int("messages", len(model.Log())).Msg("Chat session ended")
	return nil
}
