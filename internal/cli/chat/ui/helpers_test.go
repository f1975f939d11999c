package ui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/export"
)

// fakeBackend answers without a network round trip.
type fakeBackend struct {
	mu         sync.Mutex
	reply      *backend.Reply
	chatErr    error
	state      json.RawMessage
	stateErr   error
	sent       []string
	stateCalls int
}

func (f *fakeBackend) Chat(_ context.Context, message string) (*backend.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, message)
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if f.reply == nil {
		return &backend.Reply{Response: "ok"}, nil
	}
	return f.reply, nil
}

func (f *fakeBackend) State(context.Context) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stateCalls++
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	return f.state, nil
}

func (f *fakeBackend) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestModel(t *testing.T, b Backend) Model {
	t.Helper()
	m, err := NewModel(b, Options{
		BackendURL: "http://localhost:8000",
		Exporter:   export.NewWriter(t.TempDir(), ""),
	})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return result, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: key})
}

// runCmd executes cmd, expanding batches, and returns the produced messages.
// Only use it on commands that return immediately.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T.
func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}
