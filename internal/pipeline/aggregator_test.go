package pipeline

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/claudash/internal/model"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ms(n int64) *int64 { return &n }

func session(id, start string, dur *int64, msgs ...model.Message) *model.Session {
	if start != "" && len(msgs) == 0 {
		msgs = []model.Message{{Role: model.RoleUser, Timestamp: start}}
	}
	return &model.Session{
		ID:             id,
		ProjectID:      "p",
		StartTimestamp: start,
		Messages:       msgs,
		MessageCount:   len(msgs),
		DurationMs:     dur,
	}
}

func TestComputeStats_EmptyCorpus(t *testing.T) {
	c := ComputeStats(nil, time.UTC, fixedNow)

	assert.Equal(t, model.SchemaVersion, c.Version)
	assert.Equal(t, "2025-03-01", c.LastComputedDate)
	assert.Zero(t, c.TotalSessions)
	assert.Zero(t, c.TotalMessages)
	assert.NotNil(t, c.DailyActivity)
	assert.Empty(t, c.DailyActivity)
	assert.Nil(t, c.LongestSession)
	assert.Empty(t, c.FirstSessionDate)
	require.Len(t, c.HourCounts, 24)
	for h := 0; h < 24; h++ {
		v, ok := c.HourCounts[strconv.Itoa(h)]
		assert.True(t, ok, "hour %d", h)
		assert.Zero(t, v)
	}
}

func TestComputeStats_SingleSession(t *testing.T) {
	s := session("s1", "2025-01-01T10:00:00Z", ms(5000),
		model.Message{Role: model.RoleUser, Text: "Hello", Timestamp: "2025-01-01T10:00:00Z"},
		model.Message{Role: model.RoleAssistant, Text: "Hi there", Timestamp: "2025-01-01T10:00:05Z", Model: "m1"},
	)
	c := ComputeStats([]*model.Session{s}, time.UTC, fixedNow)

	assert.Equal(t, 1, c.TotalSessions)
	assert.Equal(t, 2, c.TotalMessages)
	assert.Equal(t, 2, c.HourCounts["10"])
	assert.Equal(t, []model.DailyActivity{{Date: "2025-01-01", MessageCount: 2, SessionCount: 1}}, c.DailyActivity)
	require.Contains(t, c.ModelUsage, "m1")
	assert.Equal(t, model.ModelUsage{}, *c.ModelUsage["m1"], "model tag without usage contributes zero")
	assert.Equal(t, "2025-01-01T10:00:00Z", c.FirstSessionDate)
}

func TestComputeStats_LongestSession(t *testing.T) {
	short := session("short", "2025-01-01T10:00:00Z", ms(100))
	long := session("long", "2025-01-02T10:00:00Z", ms(500))

	c := ComputeStats([]*model.Session{short, long}, time.UTC, fixedNow)
	require.NotNil(t, c.LongestSession)
	assert.Equal(t, "long", c.LongestSession.SessionID)
	assert.Equal(t, int64(500), c.LongestSession.DurationMs)

	first := session("first", "2025-01-01T10:00:00Z", ms(500))
	second := session("second", "2025-01-02T10:00:00Z", ms(500))
	c = ComputeStats([]*model.Session{first, second}, time.UTC, fixedNow)
	assert.Equal(t, "first", c.LongestSession.SessionID, "ties keep the first processed")
	assert.Equal(t, "2025-01-01T10:00:00Z", c.LongestSession.Timestamp)
	assert.Equal(t, 1, c.LongestSession.MessageCount)
}

func TestComputeStats_NoDurationMeansNoLongest(t *testing.T) {
	c := ComputeStats([]*model.Session{session("s", "2025-01-01T10:00:00Z", nil)}, time.UTC, fixedNow)
	assert.Nil(t, c.LongestSession)
}

func TestComputeStats_DailySumsMatchTotals(t *testing.T) {
	var sessions []*model.Session
	for i := 0; i < 30; i++ {
		day := time.Date(2025, 1, 1+i%7, i%24, 0, 0, 0, time.UTC)
		var msgs []model.Message
		for j := 0; j <= i%4; j++ {
			msgs = append(msgs, model.Message{
				Role:      model.RoleUser,
				Timestamp: day.Add(time.Duration(j) * time.Minute).Format(time.RFC3339),
			})
		}
		sessions = append(sessions, session("s"+strconv.Itoa(i), msgs[0].Timestamp, ms(int64(i)), msgs...))
	}
	c := ComputeStats(sessions, time.UTC, fixedNow)

	var daySessions, dayMessages, hours int
	for i, d := range c.DailyActivity {
		daySessions += d.SessionCount
		dayMessages += d.MessageCount
		if i > 0 {
			assert.Less(t, c.DailyActivity[i-1].Date, d.Date, "sorted ascending")
		}
	}
	for _, n := range c.HourCounts {
		hours += n
	}
	assert.Equal(t, c.TotalSessions, daySessions)
	assert.Equal(t, c.TotalMessages, dayMessages)
	assert.Equal(t, c.TotalMessages, hours, "every message has a resolvable timestamp")
	assert.Len(t, c.DailyActivity, 7)
}

func TestComputeStats_HourCountsSkipUnresolvable(t *testing.T) {
	s := session("s", "2025-01-01T10:00:00Z", nil,
		model.Message{Role: model.RoleUser, Timestamp: "2025-01-01T10:00:00Z"},
		model.Message{Role: model.RoleAssistant, Timestamp: ""},
		model.Message{Role: model.RoleAssistant, Timestamp: "yesterday"},
	)
	c := ComputeStats([]*model.Session{s}, time.UTC, fixedNow)

	total := 0
	for _, n := range c.HourCounts {
		total += n
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 3, c.TotalMessages)
}

func TestComputeStats_UnresolvableStartCountsInTotalsOnly(t *testing.T) {
	s := session("s", "", nil, model.Message{Role: model.RoleUser, Timestamp: "garbled"})
	c := ComputeStats([]*model.Session{s}, time.UTC, fixedNow)

	assert.Equal(t, 1, c.TotalSessions)
	assert.Equal(t, 1, c.TotalMessages)
	assert.Empty(t, c.DailyActivity)
	assert.Empty(t, c.FirstSessionDate)
}

func TestComputeStats_TimezoneBucketing(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	s := session("s", "2025-01-01T23:30:00Z", nil)

	c := ComputeStats([]*model.Session{s}, plus2, fixedNow)
	require.Len(t, c.DailyActivity, 1)
	assert.Equal(t, "2025-01-02", c.DailyActivity[0].Date)
	assert.Equal(t, 1, c.HourCounts["1"])

	c = ComputeStats([]*model.Session{s}, time.UTC, fixedNow)
	assert.Equal(t, "2025-01-01", c.DailyActivity[0].Date)
	assert.Equal(t, 1, c.HourCounts["23"])
}

func TestComputeStats_FirstSessionDateIsEarliest(t *testing.T) {
	c := ComputeStats([]*model.Session{
		session("b", "2025-02-01T00:00:00Z", nil),
		session("a", "2025-01-15T08:00:00+02:00", nil),
		session("c", "2025-01-20T00:00:00Z", nil),
	}, time.UTC, fixedNow)
	assert.Equal(t, "2025-01-15T08:00:00+02:00", c.FirstSessionDate)
}

func TestComputeStats_ToolCallsMergeIntoStartDay(t *testing.T) {
	s := session("s", "2025-01-01T10:00:00Z", nil,
		model.Message{Role: model.RoleUser, Timestamp: "2025-01-01T10:00:00Z"},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-02T10:00:00Z", ToolCalls: []string{"Read", "Bash"}},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-02T10:00:01Z", ToolCalls: []string{"Edit"}},
	)
	c := ComputeStats([]*model.Session{s}, time.UTC, fixedNow)

	require.Len(t, c.DailyActivity, 1)
	assert.Equal(t, 3, c.DailyActivity[0].ToolCallCount)
	assert.Equal(t, 3, c.TotalToolCalls())
}

func TestComputeStats_UsageDedupByMessageID(t *testing.T) {
	usage := func(in, out int64) *model.TokenUsage {
		return &model.TokenUsage{InputTokens: in, OutputTokens: out, CacheReadInputTokens: 10, CacheCreationInputTokens: 7}
	}
	s := session("s", "2025-01-01T10:00:00Z", nil,
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-01T10:00:00Z", Model: "claude-sonnet-4-5", MessageID: "msg_1", Usage: usage(100, 1)},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-01T10:00:01Z", Model: "claude-sonnet-4-5", MessageID: "msg_1", Usage: usage(100, 50)},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-01T10:00:02Z", Model: "claude-sonnet-4-5", MessageID: "msg_2", Usage: usage(20, 5)},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-01T10:00:03Z", Model: "other", Usage: usage(1, 1)},
		model.Message{Role: model.RoleAssistant, Timestamp: "2025-01-01T10:00:04Z", Model: "other", Usage: usage(1, 1)},
	)
	c := ComputeStats([]*model.Session{s}, time.UTC, fixedNow)

	sonnet := c.ModelUsage["claude-sonnet-4-5"]
	require.NotNil(t, sonnet)
	assert.Equal(t, int64(120), sonnet.InputTokens)
	assert.Equal(t, int64(55), sonnet.OutputTokens, "last line of msg_1 wins")
	assert.Equal(t, int64(20), sonnet.CacheReadInputTokens)
	assert.Equal(t, int64(14), sonnet.CacheCreationInputTokens)
	assert.Equal(t, int64(200_000), sonnet.ContextWindow)
	assert.Equal(t, int64(64_000), sonnet.MaxOutputTokens)
	assert.Greater(t, sonnet.CostUSD, 0.0)

	other := c.ModelUsage["other"]
	require.NotNil(t, other)
	assert.Equal(t, int64(2), other.InputTokens, "messages without an id are never merged")
	assert.Zero(t, other.CostUSD, "unpriced model")
	assert.Zero(t, other.ContextWindow)

	require.Len(t, c.DailyModelTokens, 1)
	assert.Equal(t, map[string]int64{"claude-sonnet-4-5": 175, "other": 4}, c.DailyModelTokens[0].TokensByModel)

	// input+output+cacheRead per model, cache creation excluded
	assert.Equal(t, int64(120+55+20+2+2+20), model.TotalTokens(c.ModelUsage))
}

func TestComputeStats_OrderOnlyAffectsTies(t *testing.T) {
	a := session("a", "2025-01-01T10:00:00Z", ms(10))
	b := session("b", "2025-01-03T11:00:00Z", ms(30))
	d := session("d", "2025-01-02T12:00:00Z", ms(20))

	x := ComputeStats([]*model.Session{a, b, d}, time.UTC, fixedNow)
	y := ComputeStats([]*model.Session{d, b, a}, time.UTC, fixedNow)
	assert.Equal(t, x, y)
}

func TestAggregator_ZeroValueAndResultSnapshot(t *testing.T) {
	var agg Aggregator
	agg.Location = time.UTC
	agg.Add(nil)
	agg.Add(session("s", "2025-01-01T10:00:00Z", ms(1)))

	first := agg.Result(fixedNow)
	first.DailyActivity[0].SessionCount = 99
	first.LongestSession.DurationMs = 99

	second := agg.Result(fixedNow)
	assert.Equal(t, 1, second.DailyActivity[0].SessionCount)
	assert.Equal(t, int64(1), second.LongestSession.DurationMs)
}
