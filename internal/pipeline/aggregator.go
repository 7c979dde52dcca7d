// Package pipeline assembles sessions from logs and folds them into a StatsCache.
package pipeline

import (
	"sort"
	"strconv"
	"time"

	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/model"
)

const dayLayout = "2006-01-02"

// Aggregator folds sessions into a StatsCache in a single pass.
// The zero value is ready to use and buckets days in local time.
// An Aggregator is not safe for concurrent use; one goroutine owns it.
type Aggregator struct {
	// Location is used for day and hour bucketing. Nil means time.Local.
	Location *time.Location

	totalSessions int
	totalMessages int
	hours         [24]int
	days          map[string]*model.DailyActivity
	dayTokens     map[string]map[string]int64
	models        map[string]*model.ModelUsage
	longest       *model.LongestSession
	first         string
	firstAt       time.Time
}

// NewAggregator returns an Aggregator bucketing in loc.
func NewAggregator(loc *time.Location) *Aggregator {
	return &Aggregator{Location: loc}
}

func (a *Aggregator) loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// Add folds one session into the running totals.
func (a *Aggregator) Add(s *model.Session) {
	if s == nil {
		return
	}
	if a.days == nil {
		a.days = make(map[string]*model.DailyActivity)
		a.dayTokens = make(map[string]map[string]int64)
		a.models = make(map[string]*model.ModelUsage)
	}
	loc := a.loc()

	a.totalSessions++
	a.totalMessages += s.MessageCount

	// Sessions without a resolvable start count toward totals only.
	var dayKey string
	if start, ok := model.ParseTimestamp(s.StartTimestamp); ok {
		dayKey = start.In(loc).Format(dayLayout)
		day, ok := a.days[dayKey]
		if !ok {
			day = &model.DailyActivity{Date: dayKey}
			a.days[dayKey] = day
		}
		day.MessageCount += s.MessageCount
		day.SessionCount++
		day.ToolCallCount += s.ToolCallCount()

		if a.first == "" || start.Before(a.firstAt) {
			a.first = s.StartTimestamp
			a.firstAt = start
		}
	}

	for _, m := range s.Messages {
		if t, ok := m.Time(); ok {
			a.hours[t.In(loc).Hour()]++
		}
		if m.Model != "" {
			a.modelEntry(m.Model)
		}
	}

	for _, m := range billableMessages(s.Messages) {
		mu := a.modelEntry(m.Model)
		u := m.Usage
		mu.InputTokens += u.InputTokens
		mu.OutputTokens += u.OutputTokens
		mu.CacheReadInputTokens += u.CacheReadInputTokens
		mu.CacheCreationInputTokens += u.CacheCreationInputTokens
		mu.WebSearchRequests += u.WebSearchRequests

		at, _ := m.Time()
		cache1h := u.CacheCreation1hTokens
		cache5m := u.CacheCreationInputTokens - cache1h
		mu.CostUSD += config.CalculateCostAt(m.Model, at,
			u.InputTokens, u.OutputTokens, cache5m, cache1h, u.CacheReadInputTokens)

		if dayKey != "" {
			byModel, ok := a.dayTokens[dayKey]
			if !ok {
				byModel = make(map[string]int64)
				a.dayTokens[dayKey] = byModel
			}
			byModel[m.Model] += u.InputTokens + u.OutputTokens
		}
	}

	if s.DurationMs != nil && (a.longest == nil || *s.DurationMs > a.longest.DurationMs) {
		a.longest = &model.LongestSession{
			SessionID:    s.ID,
			Timestamp:    s.StartTimestamp,
			DurationMs:   *s.DurationMs,
			MessageCount: s.MessageCount,
		}
	}
}

func (a *Aggregator) modelEntry(name string) *model.ModelUsage {
	mu, ok := a.models[name]
	if !ok {
		mu = &model.ModelUsage{}
		if p, found := config.LookupPricing(name); found {
			mu.ContextWindow = p.ContextWindow
			mu.MaxOutputTokens = p.MaxOutputTokens
		}
		a.models[name] = mu
	}
	return mu
}

// billableMessages returns the model-tagged messages carrying usage.
// Streaming writes one line per content block with the same message id and
// usage; only the last line of each id is kept.
func billableMessages(msgs []model.Message) []model.Message {
	lastByID := make(map[string]int)
	for i, m := range msgs {
		if m.Usage != nil && m.Model != "" && m.MessageID != "" {
			lastByID[m.MessageID] = i
		}
	}

	var out []model.Message
	for i, m := range msgs {
		if m.Usage == nil || m.Model == "" {
			continue
		}
		if m.MessageID != "" && lastByID[m.MessageID] != i {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Result snapshots the accumulated statistics, stamped with now.
// The Aggregator stays usable afterwards.
func (a *Aggregator) Result(now time.Time) *model.StatsCache {
	loc := a.loc()
	c := &model.StatsCache{
		Version:          model.SchemaVersion,
		LastComputedDate: now.In(loc).Format(dayLayout),
		DailyActivity:    make([]model.DailyActivity, 0, len(a.days)),
		DailyModelTokens: make([]model.DailyModelTokens, 0, len(a.dayTokens)),
		ModelUsage:       make(map[string]*model.ModelUsage, len(a.models)),
		TotalSessions:    a.totalSessions,
		TotalMessages:    a.totalMessages,
		FirstSessionDate: a.first,
		HourCounts:       make(map[string]int, len(a.hours)),
	}

	for _, d := range a.days {
		c.DailyActivity = append(c.DailyActivity, *d)
	}
	sort.Slice(c.DailyActivity, func(i, j int) bool {
		return c.DailyActivity[i].Date < c.DailyActivity[j].Date
	})

	for date, byModel := range a.dayTokens {
		cp := make(map[string]int64, len(byModel))
		for k, v := range byModel {
			cp[k] = v
		}
		c.DailyModelTokens = append(c.DailyModelTokens, model.DailyModelTokens{Date: date, TokensByModel: cp})
	}
	sort.Slice(c.DailyModelTokens, func(i, j int) bool {
		return c.DailyModelTokens[i].Date < c.DailyModelTokens[j].Date
	})

	for name, mu := range a.models {
		cp := *mu
		c.ModelUsage[name] = &cp
	}

	for h, n := range a.hours {
		c.HourCounts[hourKey(h)] = n
	}

	if a.longest != nil {
		ls := *a.longest
		c.LongestSession = &ls
	}
	return c
}

// ComputeStats folds sessions in order and returns the resulting StatsCache.
func ComputeStats(sessions []*model.Session, loc *time.Location, now time.Time) *model.StatsCache {
	agg := NewAggregator(loc)
	for _, s := range sessions {
		agg.Add(s)
	}
	return agg.Result(now)
}

func hourKey(h int) string {
	return strconv.Itoa(h)
}
