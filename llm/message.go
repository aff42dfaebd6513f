package llm

import "strings"

// Role indicates the author of a message.
type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
	System    Role = "system"
)

func (r Role) String() string {
	return string(r)
}

// Message is a single turn sent to or received from a model.
type Message struct {
	Role    Role     `json:"role"`
	Content []string `json:"content"`
}

// Text returns the message content joined into one string.
func (m *Message) Text() string {
	return strings.Join(m.Content, "")
}

// NewMessage returns a message with the given role and text parts.
func NewMessage(role Role, text ...string) *Message {
	return &Message{Role: role, Content: text}
}

// NewUserTextMessage returns a user message holding one text part.
func NewUserTextMessage(text string) *Message {
	return NewMessage(User, text)
}
