package config

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestLookupPricingAt_UsesEffectiveDate(t *testing.T) {
	model := "test-model-windowed"
	orig, had := defaultPricingHistory[model]
	if had {
		defer func() { defaultPricingHistory[model] = orig }()
	} else {
		defer delete(defaultPricingHistory, model)
	}

	defaultPricingHistory[model] = []modelPricingVersion{
		{
			EffectiveFrom: mustDate(t, "2025-01-01"),
			Pricing:       ModelPricing{InputPerMTok: 1.0},
		},
		{
			EffectiveFrom: mustDate(t, "2025-07-01"),
			Pricing:       ModelPricing{InputPerMTok: 2.0},
		},
	}

	aprPrice, ok := LookupPricingAt(model, mustDate(t, "2025-04-15"))
	if !ok {
		t.Fatal("LookupPricingAt returned !ok for historical model")
	}
	if aprPrice.InputPerMTok != 1.0 {
		t.Fatalf("April price InputPerMTok = %.2f, want 1.0", aprPrice.InputPerMTok)
	}

	augPrice, ok := LookupPricingAt(model, mustDate(t, "2025-08-15"))
	if !ok {
		t.Fatal("LookupPricingAt returned !ok for historical model in later window")
	}
	if augPrice.InputPerMTok != 2.0 {
		t.Fatalf("August price InputPerMTok = %.2f, want 2.0", augPrice.InputPerMTok)
	}
}

func TestLookupPricingAt_UsesLatestWhenTimeZero(t *testing.T) {
	model := "test-model-latest"
	orig, had := defaultPricingHistory[model]
	if had {
		defer func() { defaultPricingHistory[model] = orig }()
	} else {
		defer delete(defaultPricingHistory, model)
	}

	defaultPricingHistory[model] = []modelPricingVersion{
		{
			EffectiveFrom: mustDate(t, "2025-01-01"),
			Pricing:       ModelPricing{InputPerMTok: 1.0},
		},
		{
			EffectiveFrom: mustDate(t, "2025-09-01"),
			Pricing:       ModelPricing{InputPerMTok: 3.0},
		},
	}

	price, ok := LookupPricingAt(model, time.Time{})
	if !ok {
		t.Fatal("LookupPricingAt returned !ok for model with pricing history")
	}
	if price.InputPerMTok != 3.0 {
		t.Fatalf("zero-time lookup InputPerMTok = %.2f, want 3.0", price.InputPerMTok)
	}
}

func TestNormalizeModelName_StripsDateSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"claude-opus-4-5-20251101", "claude-opus-4-5"},
		{"claude-sonnet-4", "claude-sonnet-4"},
		{"claude-haiku-4-5-2025", "claude-haiku-4-5-2025"},
		{"gpt-unknown-20250101", "gpt-unknown-20250101"},
	}
	for _, tt := range tests {
		if got := NormalizeModelName(tt.in); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupPricing_CarriesModelLimits(t *testing.T) {
	p, ok := LookupPricing("claude-opus-4-5-20251101")
	if !ok {
		t.Fatal("LookupPricing returned !ok for a dated opus id")
	}
	if p.ContextWindow != 200_000 {
		t.Errorf("ContextWindow = %d, want 200000", p.ContextWindow)
	}
	if p.MaxOutputTokens != 64_000 {
		t.Errorf("MaxOutputTokens = %d, want 64000", p.MaxOutputTokens)
	}
}

func TestCalculateCostAt_UnknownModelIsFree(t *testing.T) {
	if got := CalculateCostAt("not-a-model", time.Time{}, 1_000_000, 1_000_000, 0, 0, 0); got != 0 {
		t.Fatalf("cost = %f, want 0", got)
	}
}

func TestCalculateCostAt_SumsEveryBucket(t *testing.T) {
	// sonnet: 3 in, 15 out, 3.75 5m write, 6 1h write, 0.3 read
	got := CalculateCostAt("claude-sonnet-4-5", time.Time{}, 1_000_000, 1_000_000, 1_000_000, 1_000_000, 1_000_000)
	want := 3 + 15 + 3.75 + 6 + 0.3
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("cost = %f, want %f", got, want)
	}
}

func TestApplyPricingOverrides(t *testing.T) {
	const name = "claude-haiku-3-5"
	orig := defaultPricingHistory[name]
	defer func() { defaultPricingHistory[name] = orig }()

	in := 2.0
	ApplyPricingOverrides(PricingOverrides{Overrides: map[string]ModelPricingOverride{
		name: {InputPerMTok: &in},
	}})

	p, _ := LookupPricing(name)
	if p.InputPerMTok != 2.0 {
		t.Errorf("InputPerMTok = %.2f, want 2.0", p.InputPerMTok)
	}
	if p.OutputPerMTok != 4 {
		t.Errorf("OutputPerMTok = %.2f, want untouched 4", p.OutputPerMTok)
	}
	if orig[len(orig)-1].Pricing.InputPerMTok != 0.8 {
		t.Error("override mutated the previous history slice")
	}
}
