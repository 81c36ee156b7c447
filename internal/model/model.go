package model

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the two known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Theme is the persisted UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Message is a single entry in the conversation log. Messages are immutable
// once created; the log is append-only except for an explicit clear.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// User is the session's user record, created at login or registration.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

const (
	// GreetingText seeds a fresh or recovered conversation log.
	GreetingText = "Hello! How can I assist you today?"

	// ClearedGreetingText replaces the log after an explicit clear.
	ClearedGreetingText = "Chat history has been cleared. How can I assist you today?"

	// ApologyText is appended when reply generation faults unexpectedly.
	ApologyText = "I'm sorry, I encountered an error while processing your message. Please try again."
)

// NewBotMessage builds a bot message with a fresh ID.
func NewBotMessage(content string, at time.Time) Message {
	return Message{ID: uuid.NewString(), Content: content, Sender: SenderBot, Timestamp: at}
}

// NewUserMessage builds a user message with a fresh ID.
func NewUserMessage(content string, at time.Time) Message {
	return Message{ID: uuid.NewString(), Content: content, Sender: SenderUser, Timestamp: at}
}

// DefaultLog is the single-greeting log used when nothing is persisted or the
// persisted log cannot be decoded.
func DefaultLog(at time.Time) []Message {
	return []Message{NewBotMessage(GreetingText, at)}
}
