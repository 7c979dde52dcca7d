// Package model defines the domain entities produced by the claudash pipeline.
package model

import "time"

// Role identifies who produced a message.
type Role string

// Roles accepted into a session's message sequence.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// TokenUsage is the token accounting attached to an assistant message.
type TokenUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
	WebSearchRequests        int64 `json:"webSearchRequests"`

	// Share of CacheCreationInputTokens written with the 1h TTL.
	CacheCreation1hTokens int64 `json:"cacheCreation1hTokens,omitempty"`
}

// Message is one user or assistant turn recovered from a session log.
type Message struct {
	Role      Role        `json:"role"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"`
	Model     string      `json:"model,omitempty"`
	MessageID string      `json:"messageId,omitempty"`
	ToolCalls []string    `json:"toolCalls,omitempty"`
	Usage     *TokenUsage `json:"usage,omitempty"`
}

// Time parses the message timestamp. ok is false when it is empty or malformed.
func (m Message) Time() (t time.Time, ok bool) {
	return ParseTimestamp(m.Timestamp)
}

// Session is one transcript, scoped to a project.
type Session struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"projectId"`
	StartTimestamp string    `json:"startTimestamp"`
	Messages       []Message `json:"messages"`
	MessageCount   int       `json:"messageCount"`
	DurationMs     *int64    `json:"durationMs,omitempty"`
}

// ToolCallCount returns the number of tool invocations across all messages.
func (s *Session) ToolCallCount() int {
	n := 0
	for _, m := range s.Messages {
		n += len(m.ToolCalls)
	}
	return n
}

// Project groups the sessions recorded under one working directory.
type Project struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Path        string   `json:"path"`
	Sessions    []string `json:"sessions"`
}

// ParseTimestamp parses an RFC 3339 timestamp as written in session logs.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
