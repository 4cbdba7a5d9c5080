// Package chipp is a client for the Chipp chat-completions API.
//
// A Client issues chat exchanges against a single Chipp application. The
// server correlates requests into one logical conversation through a
// chatSessionId; callers hold that token in a Session and pass the same
// Session into consecutive calls.
package chipp

// Role identifies the sender of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation. Messages are values
// constructed by the caller and never mutated by the client.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Usage tracks token consumption reported by the API.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResult is the outcome of one successful non-streaming exchange.
type ChatResult struct {
	// Content is the assistant's answer text.
	Content string

	// ChatSessionID is the continuity token issued by the server for this
	// exchange. The same value has already been written into the Session.
	ChatSessionID string

	// Usage is nil when the server omits usage reporting.
	Usage *Usage
}

// Session carries the conversation continuity token across exchanges.
//
// A Session is single-owner state: the caller passes the same *Session into
// each call of one conversation and must serialize access to it. The client
// only observes and updates the token, it never owns the Session. Sharing a
// Client between conversations is fine as long as each uses its own Session.
type Session struct {
	chatSessionID string
}

// NewSession starts a session with no existing conversation.
func NewSession() *Session {
	return &Session{}
}

// NewSessionWithID resumes a conversation from a previously issued token.
func NewSessionWithID(id string) *Session {
	return &Session{chatSessionID: id}
}

// ID returns the current continuity token, empty before the first
// successful exchange.
func (s *Session) ID() string {
	return s.chatSessionID
}

// Reset clears the token so the next exchange starts a new conversation.
func (s *Session) Reset() {
	s.chatSessionID = ""
}
