// Package session holds the chat log and the in-flight guard shared by the
// interactive and plain chat front ends.
package session

import (
	"sync"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the speaker name shown next to a message.
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Bot"
}

// Message is one entry of the chat log. Messages are never modified after
// they are appended.
type Message struct {
	Role Role
	Text string
}

// Conversation is an append-only message log.
type Conversation struct {
	messages []Message
	mu       sync.RWMutex
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		messages: make([]Message, 0),
	}
}

// Add appends a message to the conversation.
func (c *Conversation) Add(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the log in insertion order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
