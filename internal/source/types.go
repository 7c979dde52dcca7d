package source

import "encoding/json"

// RawEntry represents a single line in a Claude Code JSONL session file.
// Every field is optional; absent fields decode to their zero value.
type RawEntry struct {
	Type      string      `json:"type"`
	Subtype   string      `json:"subtype,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Cwd       string      `json:"cwd,omitempty"`
	Message   *RawMessage `json:"message,omitempty"`
}

// RawMessage is the message envelope of user and assistant entries.
// Content is either a JSON string or a list of RawFragment.
type RawMessage struct {
	ID      string          `json:"id,omitempty"`
	Role    string          `json:"role,omitempty"`
	Model   string          `json:"model,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
	Usage   *RawUsage       `json:"usage,omitempty"`
}

// RawFragment is one typed element of a content list.
// Content on tool_result fragments may itself be a string or a list.
type RawFragment struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Thinking string          `json:"thinking,omitempty"`
	Name     string          `json:"name,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// RawUsage holds token counts from the API response.
type RawUsage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
	ServerToolUse            *ServerToolUse `json:"server_tool_use,omitempty"`
	ServiceTier              string         `json:"service_tier"`
}

// CacheCreation holds the breakdown of cache write tokens by TTL bucket.
type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

// ServerToolUse counts server-side tool requests billed with the message.
type ServerToolUse struct {
	WebSearchRequests int64 `json:"web_search_requests"`
}
