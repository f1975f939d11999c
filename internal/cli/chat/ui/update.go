package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Inline commands typed as the whole input line.
const (
	cmdExport = "/export"
	cmdHelp   = "/help"
	cmdExit   = "/exit"
	cmdQuit   = "/quit"
)

// Update handles messages and updates the model (Bubbletea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd

	case chatReplyMsg:
		return m.handleReply(msg)

	case stateDownloadedMsg:
		return m.handleDownload(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		return m.startDownload()

	case "enter":
		return m.send()

	case "pgup", "pgdown", "ctrl+u":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "esc":
		m.showHelp = false
		return m, nil
	}

	// A blurred input drops keystrokes, which is how typing is disabled
	// while a reply is pending.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send runs the send flow. Blank input and sends while busy are no-ops.
func (m Model) send() (tea.Model, tea.Cmd) {
	if m.session.Busy() {
		return m, nil
	}

	value := m.input.Value()
	switch strings.ToLower(strings.TrimSpace(value)) {
	case cmdExport:
		m.input.Reset()
		return m.startDownload()
	case cmdHelp:
		m.input.Reset()
		m.showHelp = !m.showHelp
		return m, nil
	case cmdExit, cmdQuit:
		m.quitting = true
		return m, tea.Quit
	}

	sent, ok := m.session.Begin(value)
	if !ok {
		return m, nil
	}

	m.logger.Debug().Int("length", len(sent.Text)).Msg("Sending chat message")

	m.status = ""
	m.input.Reset()
	m.input.Blur()
	m.syncViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(sendCmd(m.backend, sent.Text), m.spinner.Tick)
}

// handleReply appends the bot's answer (or the error text) and re-enables
// the input.
func (m Model) handleReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	var text string
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("Chat request failed")
	} else if msg.reply != nil {
		text = msg.reply.Response
		if msg.reply.Thoughts != "" {
			m.logger.Debug().Str("thoughts", msg.reply.Thoughts).Msg("Backend reasoning")
		}
	}

	m.session.Finish(text, msg.err)

	focus := m.input.Focus()
	m.syncViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(focus, textinput.Blink)
}

func (m Model) startDownload() (tea.Model, tea.Cmd) {
	m.downloads++
	m.status = "Downloading game params…"
	m.logger.Debug().Str("path", m.exporter.Path()).Msg("Downloading state")
	return m, downloadCmd(m.backend, m.exporter)
}

func (m Model) handleDownload(msg stateDownloadedMsg) (tea.Model, tea.Cmd) {
	if m.downloads > 0 {
		m.downloads--
	}

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("Failed to download game state")
		m.session.Fail("Failed to download state", msg.err)
		m.status = ""
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.logger.Info().
		Str("path", msg.result.Path).
		Int("bytes", msg.result.Bytes).
		Msg("Saved game state")
	m.status = fmt.Sprintf("Saved %s (%d bytes)", msg.result.Path, msg.result.Bytes)
	return m, nil
}

// resize fits the widgets to the terminal.
func (m Model) resize(width, height int) Model {
	if width <= 0 || height <= 0 {
		return m
	}
	m.width = width
	m.height = height

	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-12, 10)

	if m.markdown {
		if renderer, err := newRenderer(width); err == nil {
			m.renderer = renderer
		} else {
			m.logger.Warn().Err(err).Msg("Failed to resize markdown renderer")
		}
	}

	m.syncViewport()
	return m
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
