package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamecfg/gamecfg/internal/session"
)

const thinkingText = "…thinking"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	thinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	sendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

const helpText = `Commands
  /export    Download game params (same as ctrl+s)
  /help      Toggle this help
  /exit      Quit

Keys
  enter      Send message
  ctrl+s     Download game params
  pgup/pgdn  Scroll the conversation
  ctrl+c     Quit`

// View renders the UI (Bubbletea interface).
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(helpStyle.Render(helpText))
	} else {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString(" ")
	b.WriteString(m.renderSendControl())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

// renderTitle renders the title with the download action on the right.
func (m Model) renderTitle() string {
	title := titleStyle.Render("🎮 Game-Config Chat")
	if m.backendURL != "" {
		title += hintStyle.Render(" · " + m.backendURL)
	}
	action := hintStyle.Render("[ctrl+s] Download game params")

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(action)
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + action
}

func (m Model) renderSendControl() string {
	if m.CanSend() {
		return sendStyle.Render("Send")
	}
	return disabledStyle.Render("Send")
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return hintStyle.Render("[enter] send  [ctrl+s] download  [/help] commands  [ctrl+c] quit")
}

// syncViewport refreshes the viewport with the log and, while busy, the
// thinking indicator.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderConversation())
}

// renderConversation renders every logged message followed by the
// transient thinking indicator.
func (m Model) renderConversation() string {
	var b strings.Builder

	log := m.session.Log()
	busy := m.session.Busy()

	if len(log) == 0 && !busy {
		b.WriteString(hintStyle.Render("Describe the game you want to build and tune its parameters."))
		b.WriteString("\n")
	}

	for _, msg := range log {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if busy {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), thinkingStyle.Render(thinkingText)))
	}

	return b.String()
}

// renderMessage renders one log entry: user lines right aligned, bot
// lines left aligned.
func (m Model) renderMessage(msg session.Message) string {
	width := max(m.viewport.Width, 20)

	if msg.Role == session.RoleUser {
		line := userLabelStyle.Render(msg.Role.Label()+":") + " " + msg.Text
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(line)
	}

	label := botLabelStyle.Render(msg.Role.Label() + ":")
	if m.renderer != nil && msg.Text != "" {
		if rendered, err := m.renderer.Render(msg.Text); err == nil {
			return label + "\n" + strings.Trim(rendered, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(label + " " + msg.Text)
}
