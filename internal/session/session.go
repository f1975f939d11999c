package session

import (
	"fmt"
	"strings"
	"sync"
)

// Session couples a Conversation with the busy flag that gates sends. Busy
// is true exactly between a successful Begin and the matching Finish.
type Session struct {
	conv *Conversation

	mu   sync.Mutex
	busy bool
}

// New creates an idle session with an empty log.
func New() *Session {
	return &Session{conv: NewConversation()}
}

// Begin starts a send. It is a no-op returning false when input is blank or
// another send is in flight. Otherwise the user message is appended, busy is
// set, and the message to send is returned.
func (s *Session) Begin(input string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy || strings.TrimSpace(input) == "" {
		return Message{}, false
	}

	msg := Message{Role: RoleUser, Text: input}
	s.conv.Add(msg)
	s.busy = true
	return msg, true
}

// Finish completes the in-flight send. A non-nil err replaces the reply with
// the error's text. Busy is released on both paths.
func (s *Session) Finish(reply string, err error) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{Role: RoleAssistant, Text: reply}
	if err != nil {
		msg.Text = err.Error()
	}
	s.conv.Add(msg)
	s.busy = false
	return msg
}

// Fail appends an assistant message describing err without touching busy.
// Used by flows that have no in-flight guard, such as state downloads.
func (s *Session) Fail(prefix string, err error) Message {
	text := err.Error()
	if prefix != "" {
		text = fmt.Sprintf("%s: %v", prefix, err)
	}
	msg := Message{Role: RoleAssistant, Text: text}
	s.conv.Add(msg)
	return msg
}

// Busy reports whether a send is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Log returns a copy of the message log.
func (s *Session) Log() []Message {
	return s.conv.Messages()
}

// Len returns the number of logged messages.
func (s *Session) Len() int {
	return s.conv.Len()
}
