package model

// SchemaVersion is stamped on every computed StatsCache.
const SchemaVersion = 2

// ModelUsage accumulates token usage and cost for one model.
type ModelUsage struct { //nolint:revive // mirrors the artifact's field name
	InputTokens              int64   `json:"inputTokens"`
	OutputTokens             int64   `json:"outputTokens"`
	CacheReadInputTokens     int64   `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64   `json:"cacheCreationInputTokens"`
	WebSearchRequests        int64   `json:"webSearchRequests"`
	CostUSD                  float64 `json:"costUSD"`
	ContextWindow            int64   `json:"contextWindow"`
	MaxOutputTokens          int64   `json:"maxOutputTokens"`
}

// DailyActivity holds the activity bucket for one calendar day.
type DailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

// DailyModelTokens holds input+output tokens per model for one calendar day.
type DailyModelTokens struct {
	Date          string           `json:"date"`
	TokensByModel map[string]int64 `json:"tokensByModel"`
}

// LongestSession records the session with the largest duration.
type LongestSession struct {
	SessionID    string `json:"sessionId"`
	Timestamp    string `json:"timestamp"`
	DurationMs   int64  `json:"durationMs"`
	MessageCount int    `json:"messageCount"`
}

// StatsCache is the aggregated statistics artifact.
type StatsCache struct {
	Version          int                    `json:"version"`
	LastComputedDate string                 `json:"lastComputedDate"`
	DailyActivity    []DailyActivity        `json:"dailyActivity"`
	DailyModelTokens []DailyModelTokens     `json:"dailyModelTokens"`
	ModelUsage       map[string]*ModelUsage `json:"modelUsage"`
	TotalSessions    int                    `json:"totalSessions"`
	TotalMessages    int                    `json:"totalMessages"`
	LongestSession   *LongestSession        `json:"longestSession"`
	FirstSessionDate string                 `json:"firstSessionDate"`
	HourCounts       map[string]int         `json:"hourCounts"`
}

// TotalToolCalls sums tool invocations across all days.
func (c *StatsCache) TotalToolCalls() int {
	n := 0
	for _, d := range c.DailyActivity {
		n += d.ToolCallCount
	}
	return n
}

// TotalTokens is the headline token figure: input, output and cache-read
// tokens summed across models. Cache-creation tokens are not included.
func TotalTokens(usage map[string]*ModelUsage) int64 {
	var n int64
	for _, u := range usage {
		if u == nil {
			continue
		}
		n += u.InputTokens + u.OutputTokens + u.CacheReadInputTokens
	}
	return n
}
