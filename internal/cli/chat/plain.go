package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/gamecfg/gamecfg/internal/cli/chat/ui"
	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/config"
	gcerrors "github.com/gamecfg/gamecfg/internal/errors"
	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/session"
)

const plainPrompt = ">: "

const plainHelp = `Commands:
  /export  Download game params to the export file
  /help    Show this help
  /exit    Quit (Ctrl+D also quits, Ctrl+C clears the line)`

// lineReader is the part of *readline.Instance the prompt loop needs.
type lineReader interface {
	Readline() (string, error)
}

// plainChat is the line-mode chat loop. It shares the send and download
// semantics of the full-screen view.
type plainChat struct {
	backend  ui.Backend
	exporter *export.Writer
	session  *session.Session
	out      io.Writer
	logger   zerolog.Logger
}

func newPlainChat(b ui.Backend, exporter *export.Writer, out io.Writer, logger zerolog.Logger) *plainChat {
	return &plainChat{
		backend:  b,
		exporter: exporter,
		session:  session.New(),
		out:      out,
		logger:   logger,
	}
}

// runPlain runs the line-mode chat on the process terminal.
func runPlain(ctx context.Context, cfg *config.Config) error {
	logger := helpers.NewLogger(cfg, os.Stderr, "chat")

	client, err := helpers.NewBackendClient(cfg, logger)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          plainPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "/exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer gcerrors.DeferClose(logger, rl, "Failed to close readline")

	p := newPlainChat(client, helpers.NewExporter(cfg), rl.Stdout(), logger)
	return p.run(ctx, rl)
}

// run reads lines until /exit or EOF.
func (p *plainChat) run(ctx context.Context, rl lineReader) error {
	p.printf("Game-Config Chat. Type /help for commands.\n")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("readline error: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/help":
			p.printf("%s\n", plainHelp)
			continue
		case "/export":
			p.download(ctx)
			continue
		}

		p.send(ctx, line)
	}
}

// send posts one line and prints the reply or the error text.
func (p *plainChat) send(ctx context.Context, line string) {
	msg, ok := p.session.Begin(line)
	if !ok {
		return
	}

	var text string
	reply, err := p.backend.Chat(ctx, msg.Text)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Chat request failed")
	} else {
		text = reply.Response
	}

	p.printMessage(p.session.Finish(text, err))
}

func (p *plainChat) download(ctx context.Context) {
	res, err := export.Download(ctx, p.backend, p.exporter, false)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to download game state")
		p.printMessage(p.session.Fail("Failed to download state", err))
		return
	}
	p.printf("Saved %s (%d bytes)\n", res.Path, res.Bytes)
}

func (p *plainChat) printMessage(msg session.Message) {
	p.printf("%s: %s\n", msg.Role.Label(), msg.Text)
}

func (p *plainChat) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
