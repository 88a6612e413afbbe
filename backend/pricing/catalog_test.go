// ABOUTME: Tests for the embedded pricing catalog and its loader
// ABOUTME: Validates catalog contents, conversion, and rejection of malformed YAML

package pricing

import (
	"math"
	"strings"
	"testing"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()

	if got := len(c.AvatarPlans()); got != 12 {
		t.Errorf("Expected 12 avatar plans, got %d", got)
	}
	if got := len(c.VoiceAgents()); got != 6 {
		t.Errorf("Expected 6 voice agents, got %d", got)
	}
	if got := len(c.HostingOptions()); got != 4 {
		t.Errorf("Expected 4 hosting options, got %d", got)
	}
	if c.USDToLocalRate() != 83 {
		t.Errorf("Expected rate 83, got %v", c.USDToLocalRate())
	}
	if c.MiscMonthlyLocal() != 5000 {
		t.Errorf("Expected misc expense 5000, got %v", c.MiscMonthlyLocal())
	}
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Expected Default to return a single shared catalog")
	}
}

func TestDefault_HeyGenEssential(t *testing.T) {
	plan, ok := Default().AvatarPlan("heygen-essential")
	if !ok {
		t.Fatal("Expected heygen-essential in catalog")
	}

	if plan.MonthlyPriceUSD != 99 {
		t.Errorf("Expected price 99, got %v", plan.MonthlyPriceUSD)
	}
	if plan.IncludedMinutes != 1000 {
		t.Errorf("Expected 1000 included minutes, got %d", plan.IncludedMinutes)
	}
	if plan.Concurrency == nil || *plan.Concurrency != 20 {
		t.Errorf("Expected concurrency 20, got %v", plan.Concurrency)
	}
	if plan.MaxSessionMinutes == nil || *plan.MaxSessionMinutes != 20 {
		t.Errorf("Expected max session 20, got %v", plan.MaxSessionMinutes)
	}
	if plan.Provider != ProviderHeyGen {
		t.Errorf("Expected provider heygen, got %s", plan.Provider)
	}
}

func TestDefault_CustomPlanHasNoLimits(t *testing.T) {
	plan, ok := Default().AvatarPlan("heygen-enterprise")
	if !ok {
		t.Fatal("Expected heygen-enterprise in catalog")
	}
	if !plan.IsCustom() {
		t.Error("Expected heygen-enterprise to be a custom plan")
	}
	if plan.Concurrency != nil {
		t.Errorf("Expected no concurrency limit, got %d", *plan.Concurrency)
	}
}

func TestDefault_VoiceAgentVariants(t *testing.T) {
	c := Default()

	gemini, ok := c.VoiceAgent("gemini-live")
	if !ok {
		t.Fatal("Expected gemini-live in catalog")
	}
	tokens, ok := gemini.Pricing.(TokenPricing)
	if !ok {
		t.Fatalf("Expected TokenPricing, got %T", gemini.Pricing)
	}
	if tokens.PricePer1MTokensUSD != 17.05 || tokens.TokensPerMinute != 300 {
		t.Errorf("Unexpected gemini pricing: %+v", tokens)
	}
	if gemini.Concurrency() != nil {
		t.Error("Expected token-priced agent to have no concurrency limit")
	}

	hume, _ := c.VoiceAgent("hume-scale")
	perMin, ok := hume.Pricing.(PerMinutePricing)
	if !ok {
		t.Fatalf("Expected PerMinutePricing, got %T", hume.Pricing)
	}
	if perMin.MonthlyBaseUSD != 200 || perMin.PricePerMinuteUSD != 0.05 {
		t.Errorf("Unexpected hume-scale pricing: %+v", perMin)
	}
	if hume.Concurrency() == nil || *hume.Concurrency() != 20 {
		t.Errorf("Expected hume-scale concurrency 20, got %v", hume.Concurrency())
	}

	grok, _ := c.VoiceAgent("grok")
	if grok.Concurrency() != nil {
		t.Error("Expected grok to declare no concurrency limit")
	}
	if grok.PricingModel() != ModelPerMinute {
		t.Errorf("Expected per-minute model, got %s", grok.PricingModel())
	}
}

func TestCatalog_LookupMissing(t *testing.T) {
	c := Default()
	if _, ok := c.AvatarPlan("nope"); ok {
		t.Error("Expected missing avatar plan lookup to fail")
	}
	if _, ok := c.VoiceAgent("nope"); ok {
		t.Error("Expected missing voice agent lookup to fail")
	}
	if _, ok := c.HostingOption("nope"); ok {
		t.Error("Expected missing hosting lookup to fail")
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := Default()
	plans := c.AvatarPlans()
	plans[0].Name = "mutated"

	if c.AvatarPlans()[0].Name == "mutated" {
		t.Error("Expected AvatarPlans to return a copy")
	}
}

func TestCatalog_AccessorsCopyLimits(t *testing.T) {
	c := Default()

	plans := c.AvatarPlans()
	*plans[0].Concurrency = 1
	*plans[0].MaxSessionMinutes = 1

	plan, ok := c.AvatarPlan("heygen-essential")
	if !ok {
		t.Fatal("Expected heygen-essential in catalog")
	}
	if *plan.Concurrency != 20 || *plan.MaxSessionMinutes != 20 {
		t.Errorf("Catalog limits changed through a copy: concurrency=%d max_session=%d",
			*plan.Concurrency, *plan.MaxSessionMinutes)
	}

	*plan.Concurrency = 2
	if again, _ := c.AvatarPlan("heygen-essential"); *again.Concurrency != 20 {
		t.Errorf("Lookup returned shared limit, got concurrency %d", *again.Concurrency)
	}

	for _, agent := range c.VoiceAgents() {
		if limit := agent.Concurrency(); limit != nil {
			*limit = 1
		}
	}
	hume, ok := c.VoiceAgent("hume-pro")
	if !ok {
		t.Fatal("Expected hume-pro in catalog")
	}
	if limit := hume.Concurrency(); limit == nil || *limit != 10 {
		t.Errorf("Voice agent limit changed through a copy: %v", limit)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	limit := 5
	plans := []AvatarPlan{{
		ID: "p", Name: "Plan", Provider: ProviderHeyGen, Tier: "Pro",
		MonthlyPriceUSD: 10, Concurrency: &limit, HasInbuiltVoice: true,
	}}
	hosting := []HostingOption{{ID: "h", Name: "Host", BaseMonthlyLocal: 1}}

	c, err := New(83, 0, plans, nil, hosting)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	limit = 99

	if got := *c.AvatarPlans()[0].Concurrency; got != 5 {
		t.Errorf("Expected catalog to keep concurrency 5, got %d", got)
	}
}

func TestCatalog_CurrencyConversion(t *testing.T) {
	c := Default()

	if got := c.ToLocal(349); got != 28967 {
		t.Errorf("Expected 349 USD = 28967 INR, got %v", got)
	}
	if got := c.ToUSD(c.ToLocal(17.9025)); math.Abs(got-17.9025) > 1e-9 {
		t.Errorf("Expected round trip to 17.9025, got %v", got)
	}
}

const minimalCatalog = `
usd_to_local_rate: 80
misc_monthly_local: 100
avatar_plans:
  - id: a
    name: A
    provider: anam
    monthly_price_usd: 10
    included_minutes: 10
    additional_per_min_usd: 1
    has_inbuilt_voice: true
voice_agents:
  - id: v
    name: V
    pricing_model: per-minute
    pricing:
      price_per_minute_usd: 0.1
hosting_options:
  - id: h
    name: H
    base_monthly_local: 1
    per_user_monthly_local: 1
    per_call_local: 1
`

func TestLoad_Minimal(t *testing.T) {
	c, err := Load(strings.NewReader(minimalCatalog))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.USDToLocalRate() != 80 {
		t.Errorf("Expected rate 80, got %v", c.USDToLocalRate())
	}
	v, _ := c.VoiceAgent("v")
	if _, ok := v.Pricing.(PerMinutePricing); !ok {
		t.Errorf("Expected per-minute pricing, got %T", v.Pricing)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty document",
			yaml:    "",
			wantErr: "empty",
		},
		{
			name:    "unknown pricing model",
			yaml:    strings.Replace(minimalCatalog, "pricing_model: per-minute", "pricing_model: flat", 1),
			wantErr: "unknown pricing model",
		},
		{
			name:    "negative avatar price",
			yaml:    strings.Replace(minimalCatalog, "monthly_price_usd: 10", "monthly_price_usd: -10", 1),
			wantErr: "MonthlyPriceUSD",
		},
		{
			name:    "zero exchange rate",
			yaml:    strings.Replace(minimalCatalog, "usd_to_local_rate: 80", "usd_to_local_rate: 0", 1),
			wantErr: "USDToLocalRate",
		},
		{
			name:    "unknown provider",
			yaml:    strings.Replace(minimalCatalog, "provider: anam", "provider: acme", 1),
			wantErr: "Provider",
		},
		{
			name:    "unknown field",
			yaml:    minimalCatalog + "surprise: true\n",
			wantErr: "surprise",
		},
		{
			name:    "missing voice pricing block",
			yaml:    strings.Replace(minimalCatalog, "    pricing:\n      price_per_minute_usd: 0.1\n", "", 1),
			wantErr: "missing pricing block",
		},
		{
			name: "duplicate hosting id",
			yaml: minimalCatalog + `  - id: h
    name: H2
    base_monthly_local: 1
    per_user_monthly_local: 1
    per_call_local: 1
`,
			wantErr: "HostingOptions",
		},
		{
			name:    "zero tokens per minute",
			yaml:    strings.Replace(strings.Replace(minimalCatalog, "pricing_model: per-minute", "pricing_model: tokens", 1), "price_per_minute_usd: 0.1", "price_per_1m_tokens_usd: 1", 1),
			wantErr: "TokensPerMinute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestNew_Validates(t *testing.T) {
	_, err := New(0, 0, nil, nil, nil)
	if err == nil {
		t.Error("Expected error for empty catalog, got nil")
	}

	limit := 2
	c, err := New(10, 0,
		[]AvatarPlan{{ID: "p", Name: "P", Provider: ProviderTevus, MonthlyPriceUSD: 1, Concurrency: &limit}},
		nil,
		[]HostingOption{{ID: "h", Name: "H"}},
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.ToLocal(2) != 20 {
		t.Errorf("Expected 20, got %v", c.ToLocal(2))
	}
}
