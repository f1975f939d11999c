// Package ui implements the interactive chat view.
package ui

import (
	"context"
	"encoding/json"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chromeHeight is the number of rows outside the message viewport:
	// title, two rules, input and the hint line.
	chromeHeight = 5
)

// Backend is the part of the game-config service the view talks to.
type Backend interface {
	Chat(ctx context.Context, message string) (*backend.Reply, error)
	State(ctx context.Context) (json.RawMessage, error)
}

// Options configures a Model.
type Options struct {
	// BackendURL is shown in the title bar.
	BackendURL string
	// Exporter receives downloaded state. Defaults to ./game_params.json.
	Exporter *export.Writer
	// RenderMarkdown renders bot replies through glamour.
	RenderMarkdown bool
	Logger         zerolog.Logger
}

// Model is the Bubbletea model for the chat view.
type Model struct {
	// Configuration
	backend    Backend
	exporter   *export.Writer
	backendURL string
	markdown   bool
	logger     zerolog.Logger

	// Chat state. The session is shared between model copies.
	session *session.Session

	// Widgets
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	// Transient UI state, never part of the log.
	status    string
	downloads int
	showHelp  bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a chat view bound to b.
func NewModel(b Backend, opts Options) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "Type your message…"
	ti.Prompt = "> "
	ti.Focus()
	ti.Width = defaultWidth - 12

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = thinkingStyle

	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.NewWriter("", "")
	}

	m := Model{
		backend:    b,
		exporter:   exporter,
		backendURL: opts.BackendURL,
		markdown:   opts.RenderMarkdown,
		logger:     opts.Logger.With().Str("component", "chat_ui").Logger(),
		session:    session.New(),
		input:      ti,
		spinner:    s,
		viewport:   viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:      defaultWidth,
		height:     defaultHeight,
	}

	if m.markdown {
		renderer, err := newRenderer(defaultWidth)
		if err != nil {
			return Model{}, err
		}
		m.renderer = renderer
	}

	m.syncViewport()
	return m, nil
}

// newRenderer builds a markdown renderer honoring NO_COLOR.
func newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-8, 20))}
	if os.Getenv("NO_COLOR") != "" {
		opts = append(opts, glamour.WithStylePath("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	return glamour.NewTermRenderer(opts...)
}

// Init initializes the model (Bubbletea interface).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Log returns a copy of the message log.
func (m Model) Log() []session.Message {
	return m.session.Log()
}

// Busy reports whether a chat request is in flight.
func (m Model) Busy() bool {
	return m.session.Busy()
}

// Input returns the current draft text.
func (m Model) Input() string {
	return m.input.Value()
}

// CanSend reports whether the send control is enabled.
func (m Model) CanSend() bool {
	return !m.session.Busy() && !isBlank(m.input.Value())
}
