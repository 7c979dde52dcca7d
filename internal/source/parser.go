// Package source discovers and parses Claude Code JSONL session logs.
package source

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/theirongolddev/claudash/internal/model"
)

// MaxAssistantText caps the rune length of assistant message text.
const MaxAssistantText = 500

// ParseResult holds the output of parsing one session log.
type ParseResult struct {
	Messages []model.Message

	// Lines counts non-blank input lines.
	Lines int
	// Malformed counts lines that are not decodable records.
	Malformed int
	// Ignored counts well-formed records of other types (system, progress, ...).
	Ignored int
}

// Undecodable reports whether the log had content but no line decoded.
func (r ParseResult) Undecodable() bool {
	return r.Lines > 0 && r.Malformed == r.Lines
}

// ParseMessages reads a JSONL session log and returns its user and assistant
// messages in line order. A line that fails to decode is skipped and counted;
// it never aborts the rest of the log.
//
// Entry routing by top-level "type" field:
//   - "user", "assistant" → full decode into a model.Message
//   - any other type      → counted as ignored, not decoded
//   - no type found       → counted as malformed
func ParseMessages(r io.Reader) (ParseResult, error) {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		res.Lines++

		switch extractTopLevelType(line) {
		case "":
			res.Malformed++
		case string(model.RoleUser), string(model.RoleAssistant):
			var entry RawEntry
			// The scanner reuses its buffer; decode from a private copy.
			if err := sonic.UnmarshalString(string(line), &entry); err != nil {
				res.Malformed++
				continue
			}
			msg, ok, err := buildMessage(&entry)
			if err != nil {
				res.Malformed++
				continue
			}
			if ok {
				res.Messages = append(res.Messages, msg)
			}
		default:
			res.Ignored++
		}
	}

	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// buildMessage converts a decoded user/assistant entry into a Message.
// ok is false when the entry carries no content.
func buildMessage(entry *RawEntry) (model.Message, bool, error) {
	if entry.Message == nil {
		return model.Message{}, false, nil
	}
	raw := bytes.TrimSpace(entry.Message.Content)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return model.Message{}, false, nil
	}

	role := model.Role(entry.Type)
	msg := model.Message{
		Role:      role,
		Timestamp: entry.Timestamp,
		Model:     entry.Message.Model,
		MessageID: entry.Message.ID,
	}

	var text string
	switch raw[0] {
	case '"':
		if err := sonic.Unmarshal(raw, &text); err != nil {
			return model.Message{}, false, err
		}
		if text == "" {
			return model.Message{}, false, nil
		}
	case '[':
		var frags []RawFragment
		if err := sonic.Unmarshal(raw, &frags); err != nil {
			return model.Message{}, false, err
		}
		text = joinFragments(role, frags)
		if role == model.RoleAssistant {
			msg.ToolCalls = toolCalls(frags)
		}
	default:
		return model.Message{}, false, nil
	}

	switch role {
	case model.RoleUser:
		msg.Text = StripMarkup(text)
	case model.RoleAssistant:
		msg.Text = TruncateText(text, MaxAssistantText)
		msg.Usage = convertUsage(entry.Message.Usage)
	}
	return msg, true, nil
}

// joinFragments concatenates the textual fragments of a content list.
// User fragments fall back to a string "content"; assistant fragments to "thinking".
func joinFragments(role model.Role, frags []RawFragment) string {
	var b bytes.Buffer
	for _, f := range frags {
		if f.Text != "" {
			b.WriteString(f.Text)
			continue
		}
		switch role {
		case model.RoleUser:
			if len(f.Content) > 0 && f.Content[0] == '"' {
				var s string
				if err := sonic.Unmarshal(f.Content, &s); err == nil {
					b.WriteString(s)
				}
			}
		case model.RoleAssistant:
			b.WriteString(f.Thinking)
		}
	}
	return b.String()
}

func toolCalls(frags []RawFragment) []string {
	var names []string
	for _, f := range frags {
		if f.Type == "tool_use" && f.Name != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

func convertUsage(u *RawUsage) *model.TokenUsage {
	if u == nil {
		return nil
	}
	tu := &model.TokenUsage{
		InputTokens:              u.InputTokens,
		OutputTokens:             u.OutputTokens,
		CacheReadInputTokens:     u.CacheReadInputTokens,
		CacheCreationInputTokens: u.CacheCreationInputTokens,
	}
	if u.CacheCreation != nil {
		split := u.CacheCreation.Ephemeral5mInputTokens + u.CacheCreation.Ephemeral1hInputTokens
		if tu.CacheCreationInputTokens < split {
			tu.CacheCreationInputTokens = split
		}
		tu.CacheCreation1hTokens = u.CacheCreation.Ephemeral1hInputTokens
	}
	if u.ServerToolUse != nil {
		tu.WebSearchRequests = u.ServerToolUse.WebSearchRequests
	}
	return tu
}

var markupTag = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes inline <...> tags. Applying it twice is the same as once.
func StripMarkup(s string) string {
	return markupTag.ReplaceAllString(s, "")
}

// TruncateText returns at most maxRunes runes of s.
func TruncateText(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// typeKey is the byte sequence for a JSON key named "type" (with quotes).
var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "type" keys are ignored.
// Returns "" when the line has no top-level string "type".
func extractTopLevelType(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				val, isKey := classifyType(line, i+len(typeKey))
				if isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// classifyType checks whether pos follows a JSON key (expects : then value).
// isKey=false means "type" appeared as a value, not a key.
func classifyType(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end <= 0 || end > 64 {
		return "", true
	}
	v := line[i : i+end]
	if bytes.IndexByte(v, '\\') >= 0 {
		return "", true
	}
	return string(v), true
}

// skipJSONString advances past a JSON string starting at the opening quote.
//
//nolint:gosec // manual bounds checking throughout
func skipJSONString(line []byte, i int) int {
	i++
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
