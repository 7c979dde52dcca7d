package config

import (
	"strings"
	"sync"
	"time"
)

// ModelPricing holds per-million-token prices and limits for a model.
type ModelPricing struct {
	InputPerMTok        float64
	OutputPerMTok       float64
	CacheWrite5mPerMTok float64
	CacheWrite1hPerMTok float64
	CacheReadPerMTok    float64

	ContextWindow   int64
	MaxOutputTokens int64
}

type modelPricingVersion struct {
	EffectiveFrom time.Time
	Pricing       ModelPricing
}

// tier builds a pricing entry from input/output prices using Anthropic's
// standard cache multipliers (1.25x 5m write, 2x 1h write, 0.1x read).
func tier(input, output float64, contextWindow, maxOutput int64) ModelPricing {
	return ModelPricing{
		InputPerMTok:        input,
		OutputPerMTok:       output,
		CacheWrite5mPerMTok: input * 1.25,
		CacheWrite1hPerMTok: input * 2,
		CacheReadPerMTok:    input * 0.1,
		ContextWindow:       contextWindow,
		MaxOutputTokens:     maxOutput,
	}
}

// DefaultPricing maps model base names to their pricing.
var DefaultPricing = map[string]ModelPricing{
	"claude-opus-4-6":   tier(5, 25, 200_000, 128_000),
	"claude-opus-4-5":   tier(5, 25, 200_000, 64_000),
	"claude-opus-4-1":   tier(15, 75, 200_000, 32_000),
	"claude-opus-4":     tier(15, 75, 200_000, 32_000),
	"claude-sonnet-4-6": tier(3, 15, 200_000, 64_000),
	"claude-sonnet-4-5": tier(3, 15, 200_000, 64_000),
	"claude-sonnet-4":   tier(3, 15, 200_000, 64_000),
	"claude-haiku-4-5":  tier(1, 5, 200_000, 64_000),
	"claude-haiku-3-5":  tier(0.8, 4, 200_000, 8_192),
}

var (
	pricingMu sync.RWMutex
	// defaultPricingHistory stores effective-dated prices for each model.
	// Entries must be sorted by EffectiveFrom ascending.
	defaultPricingHistory = makeDefaultPricingHistory(DefaultPricing)
)

func makeDefaultPricingHistory(base map[string]ModelPricing) map[string][]modelPricingVersion {
	history := make(map[string][]modelPricingVersion, len(base))
	for modelName, pricing := range base {
		history[modelName] = []modelPricingVersion{{Pricing: pricing}}
	}
	return history
}

// ApplyPricingOverrides replaces the latest price of each overridden model.
// Unknown models are added with the override as their only price.
func ApplyPricingOverrides(o PricingOverrides) {
	pricingMu.Lock()
	defer pricingMu.Unlock()

	for name, ov := range o.Overrides {
		versions := defaultPricingHistory[name]
		var p ModelPricing
		if len(versions) > 0 {
			p = versions[len(versions)-1].Pricing
		}
		setIf(&p.InputPerMTok, ov.InputPerMTok)
		setIf(&p.OutputPerMTok, ov.OutputPerMTok)
		setIf(&p.CacheWrite5mPerMTok, ov.CacheWrite5mPerMTok)
		setIf(&p.CacheWrite1hPerMTok, ov.CacheWrite1hPerMTok)
		setIf(&p.CacheReadPerMTok, ov.CacheReadPerMTok)

		if len(versions) == 0 {
			defaultPricingHistory[name] = []modelPricingVersion{{Pricing: p}}
			continue
		}
		updated := append([]modelPricingVersion(nil), versions...)
		updated[len(updated)-1].Pricing = p
		defaultPricingHistory[name] = updated
	}
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func hasPricingModel(model string) bool {
	_, ok := defaultPricingHistory[model]
	return ok
}

// NormalizeModelName strips date suffixes from model identifiers.
// e.g., "claude-opus-4-5-20251101" -> "claude-opus-4-5"
func NormalizeModelName(raw string) string {
	pricingMu.RLock()
	defer pricingMu.RUnlock()
	return normalizeLocked(raw)
}

func normalizeLocked(raw string) string {
	if hasPricingModel(raw) {
		return raw
	}

	parts := strings.Split(raw, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if isAllDigits(last) && len(last) >= 8 {
			candidate := strings.Join(parts[:len(parts)-1], "-")
			if hasPricingModel(candidate) {
				return candidate
			}
		}
	}

	return raw
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// LookupPricing returns the latest pricing for a model.
func LookupPricing(model string) (ModelPricing, bool) {
	return LookupPricingAt(model, time.Time{})
}

// LookupPricingAt returns the pricing for a model at the given timestamp.
// If at is zero, the latest known pricing entry is used.
func LookupPricingAt(model string, at time.Time) (ModelPricing, bool) {
	pricingMu.RLock()
	defer pricingMu.RUnlock()

	versions, ok := defaultPricingHistory[normalizeLocked(model)]
	if !ok || len(versions) == 0 {
		return ModelPricing{}, false
	}

	if at.IsZero() {
		return versions[len(versions)-1].Pricing, true
	}

	at = at.UTC()
	selected := versions[0].Pricing
	for _, v := range versions {
		if v.EffectiveFrom.IsZero() || !at.Before(v.EffectiveFrom.UTC()) {
			selected = v.Pricing
			continue
		}
		break
	}
	return selected, true
}

// CalculateCostAt computes the estimated cost in USD for one API call at a point in time.
// Unknown models cost 0.
func CalculateCostAt(
	model string,
	at time.Time,
	inputTokens,
	outputTokens,
	cache5m,
	cache1h,
	cacheRead int64,
) float64 {
	pricing, ok := LookupPricingAt(model, at)
	if !ok {
		return 0
	}

	cost := float64(inputTokens) * pricing.InputPerMTok / 1_000_000
	cost += float64(outputTokens) * pricing.OutputPerMTok / 1_000_000
	cost += float64(cache5m) * pricing.CacheWrite5mPerMTok / 1_000_000
	cost += float64(cache1h) * pricing.CacheWrite1hPerMTok / 1_000_000
	cost += float64(cacheRead) * pricing.CacheReadPerMTok / 1_000_000

	return cost
}
