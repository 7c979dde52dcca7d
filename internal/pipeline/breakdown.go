package pipeline

import (
	"sort"

	"github.com/theirongolddev/claudash/internal/model"
)

// ModelRow is one model's usage as shown in the per-model views.
type ModelRow struct {
	Model string
	model.ModelUsage
	// Tokens is the model's headline token figure (input+output+cache-read).
	Tokens int64
	// Share is Tokens as a fraction of the headline total across models.
	Share float64
}

// TokenTotals sums token usage and cost across models.
type TokenTotals struct {
	InputTokens         int64
	OutputTokens        int64
	CacheReadTokens     int64
	CacheCreationTokens int64
	WebSearchRequests   int64
	CostUSD             float64
	// Tokens is the headline total; cache-creation tokens are excluded.
	Tokens int64
}

// ModelBreakdown returns per-model rows sorted by cost, then tokens, then name.
func ModelBreakdown(c *model.StatsCache) []ModelRow {
	if c == nil {
		return nil
	}
	total := model.TotalTokens(c.ModelUsage)

	rows := make([]ModelRow, 0, len(c.ModelUsage))
	for name, mu := range c.ModelUsage {
		if mu == nil {
			continue
		}
		row := ModelRow{
			Model:      name,
			ModelUsage: *mu,
			Tokens:     mu.InputTokens + mu.OutputTokens + mu.CacheReadInputTokens,
		}
		if total > 0 {
			row.Share = float64(row.Tokens) / float64(total)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CostUSD != rows[j].CostUSD {
			return rows[i].CostUSD > rows[j].CostUSD
		}
		if rows[i].Tokens != rows[j].Tokens {
			return rows[i].Tokens > rows[j].Tokens
		}
		return rows[i].Model < rows[j].Model
	})
	return rows
}

// SumTokens totals every model's usage.
func SumTokens(c *model.StatsCache) TokenTotals {
	var t TokenTotals
	if c == nil {
		return t
	}
	for _, mu := range c.ModelUsage {
		if mu == nil {
			continue
		}
		t.InputTokens += mu.InputTokens
		t.OutputTokens += mu.OutputTokens
		t.CacheReadTokens += mu.CacheReadInputTokens
		t.CacheCreationTokens += mu.CacheCreationInputTokens
		t.WebSearchRequests += mu.WebSearchRequests
		t.CostUSD += mu.CostUSD
	}
	t.Tokens = model.TotalTokens(c.ModelUsage)
	return t
}

// HourCount is one bucket of the hour-of-day histogram.
type HourCount struct {
	Hour  int
	Count int
}

// Hours returns the 24 hour-of-day buckets in order. Missing keys read as zero.
func Hours(c *model.StatsCache) []HourCount {
	out := make([]HourCount, 24)
	for h := range out {
		out[h].Hour = h
		if c != nil {
			out[h].Count = c.HourCounts[hourKey(h)]
		}
	}
	return out
}

// RecentDays returns the last n entries of dailyActivity, oldest first.
// n <= 0 returns every day.
func RecentDays(c *model.StatsCache, n int) []model.DailyActivity {
	if c == nil {
		return nil
	}
	days := c.DailyActivity
	if n > 0 && len(days) > n {
		days = days[len(days)-n:]
	}
	return days
}
