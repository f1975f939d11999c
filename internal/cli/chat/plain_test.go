package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/backend/backendtest"
	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/session"
)

// scriptedReader replays lines, then returns io.EOF. An entry holding an
// error is returned as that error.
type scriptedReader struct {
	lines []any
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	next := r.lines[0]
	r.lines = r.lines[1:]
	if err, ok := next.(error); ok {
		return "", err
	}
	return next.(string), nil
}

func newTestPlainChat(t *testing.T) (*plainChat, *backendtest.Server, *bytes.Buffer) {
	t.Helper()

	srv := backendtest.New(t)
	client, err := backend.New(srv.URL)
	require.NoError(t, err)

	var out bytes.Buffer
	p := newPlainChat(client, export.NewWriter(t.TempDir(), ""), &out, zerolog.Nop())
	return p, srv, &out
}

func TestPlainChat_SendsLinesAndPrintsReplies(t *testing.T) {
	p, srv, out := newTestPlainChat(t)
	srv.Reply("hi there")

	err := p.run(context.Background(), &scriptedReader{lines: []any{"", "   ", "hello"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello"}, srv.Messages())
	assert.Contains(t, out.String(), "Bot: hi there\n")
	assert.Equal(t, []session.Message{
		{Role: session.RoleUser, Text: "hello"},
		{Role: session.RoleAssistant, Text: "hi there"},
	}, p.session.Log())
	assert.False(t, p.session.Busy())
}

func TestPlainChat_ErrorReplyIsPrinted(t *testing.T) {
	p, srv, out := newTestPlainChat(t)
	srv.ReplyWith(func(string) (int, string) {
		return http.StatusInternalServerError, `{"detail":"model unavailable"}`
	})

	require.NoError(t, p.run(context.Background(), &scriptedReader{lines: []any{"hello"}}))

	log := p.session.Log()
	require.Len(t, log, 2)
	assert.Contains(t, log[1].Text, "model unavailable")
	assert.Contains(t, out.String(), "Bot: POST /chat: unexpected status 500")
	assert.False(t, p.session.Busy())
}

func TestPlainChat_Export(t *testing.T) {
	p, srv, out := newTestPlainChat(t)
	srv.SetState(`{"level":3}`)

	require.NoError(t, p.run(context.Background(), &scriptedReader{lines: []any{"/export"}}))

	data, err := os.ReadFile(p.exporter.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"level\": 3\n}", string(data))
	assert.Contains(t, out.String(), "Saved "+p.exporter.Path())
	assert.Empty(t, p.session.Log())
	assert.Zero(t, srv.ChatCalls())
}

func TestPlainChat_ExportFailure(t *testing.T) {
	p, srv, out := newTestPlainChat(t)
	srv.SetStateResponse(http.StatusServiceUnavailable, `{"detail":"warming up"}`)

	require.NoError(t, p.run(context.Background(), &scriptedReader{lines: []any{"/export"}}))

	log := p.session.Log()
	require.Len(t, log, 1)
	assert.Equal(t, session.RoleAssistant, log[0].Role)
	assert.Contains(t, log[0].Text, "Failed to download state: GET /state: unexpected status 503")
	assert.Contains(t, out.String(), "Bot: Failed to download state")
	assert.NoFileExists(t, p.exporter.Path())
}

func TestPlainChat_ExitAndInterrupt(t *testing.T) {
	p, srv, out := newTestPlainChat(t)

	err := p.run(context.Background(), &scriptedReader{lines: []any{
		readline.ErrInterrupt,
		"/help",
		"/exit",
		"never sent",
	}})
	require.NoError(t, err)

	assert.Zero(t, srv.ChatCalls())
	assert.Contains(t, out.String(), "/export  Download game params")
}

func TestPlainChat_ReadError(t *testing.T) {
	p, _, _ := newTestPlainChat(t)

	err := p.run(context.Background(), &scriptedReader{lines: []any{errors.New("tty gone")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestNewChatCmd(t *testing.T) {
	cmd := NewChatCmd(nil)

	assert.Equal(t, "chat", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	require.NotNil(t, cmd.Flags().Lookup("plain"))
	assert.Equal(t, "false", cmd.Flags().Lookup("plain").DefValue)
}
