package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamecfg/gamecfg/internal/export"
)

// sendCmd posts text to the backend. It runs off the event loop and reports
// back through a single chatReplyMsg, success or not.
func sendCmd(b Backend, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := b.Chat(context.Background(), text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// downloadCmd fetches /state and saves it through w.
func downloadCmd(b Backend, w *export.Writer) tea.Cmd {
	return func() tea.Msg {
		res, err := export.Download(context.Background(), b, w, false)
		return stateDownloadedMsg{result: res, err: err}
	}
}
