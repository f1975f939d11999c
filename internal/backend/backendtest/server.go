// Package backendtest provides an in-process fake of the game-config service.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gamecfg/gamecfg/internal/constants"
)

// DefaultState mirrors what the service returns before a game type is chosen.
const DefaultState = `{"game_mode": null, "params": []}`

// ChatFunc produces the status code and raw body for a chat message.
type ChatFunc func(message string) (status int, body string)

// Server is a fake backend. Handlers are safe to reconfigure while running.
type Server struct {
	*httptest.Server
	t testing.TB

	mu          sync.Mutex
	chat        ChatFunc
	stateStatus int
	stateBody   string
	gate        chan struct{}
	messages    []string
	requestIDs  []string
	chatCalls   int
	stateCalls  int
}

// New starts a fake backend that echoes chat messages and serves
// DefaultState. It is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		t: t,
		chat: func(message string) (int, string) {
			body, _ := json.Marshal(map[string]string{
				"response": "echo: " + message,
				"thoughts": "",
			})
			return http.StatusOK, string(body)
		},
		stateStatus: http.StatusOK,
		stateBody:   DefaultState,
	}

	r := chi.NewRouter()
	r.Post(constants.ChatPath, s.handleChat)
	r.Get(constants.StatePath, s.handleState)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// ReplyWith replaces the chat handler.
func (s *Server) ReplyWith(fn ChatFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = fn
}

// Reply makes every chat message answer with the given response text.
func (s *Server) Reply(response string) {
	s.ReplyWith(func(string) (int, string) {
		body, _ := json.Marshal(map[string]string{"response": response})
		return http.StatusOK, string(body)
	})
}

// SetState sets the /state body served with 200.
func (s *Server) SetState(body string) {
	s.SetStateResponse(http.StatusOK, body)
}

// SetStateResponse sets the /state status and body.
func (s *Server) SetStateResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateStatus = status
	s.stateBody = body
}

// Hold makes chat handlers block until the returned release func is called.
// Held requests are released automatically before the server closes.
func (s *Server) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	s.t.Cleanup(release)
	return release
}

// Messages returns every chat message received, in arrival order.
func (s *Server) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// RequestIDs returns the request id header of every request received.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// ChatCalls returns the number of /chat requests.
func (s *Server) ChatCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatCalls
}

// StateCalls returns the number of /state requests.
func (s *Server) StateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateCalls
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	var req struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		http.Error(w, `{"detail":"invalid request body"}`, http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.chatCalls++
	s.messages = append(s.messages, req.Message)
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
	fn, gate := s.chat, s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	status, body := fn(req.Message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.stateCalls++
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
	status, body := s.stateStatus, s.stateBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
