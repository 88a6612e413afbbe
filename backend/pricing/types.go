// ABOUTME: Catalog entity types for avatar plans, voice agents, and hosting options
// ABOUTME: Voice agent pricing is a sealed union of token and per-minute variants

package pricing

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Provider identifies the avatar rendering vendor behind a plan
type Provider string

const (
	ProviderHeyGen Provider = "heygen"
	ProviderAnam   Provider = "anam"
	ProviderTevus  Provider = "tevus"
)

// AvatarPlan is a purchasable tier from an avatar rendering provider.
// A plan with MonthlyPriceUSD == 0 is a contact-sales tier and cannot be costed.
type AvatarPlan struct {
	ID                  string   `yaml:"id" json:"id" validate:"required"`
	Name                string   `yaml:"name" json:"name" validate:"required"`
	Provider            Provider `yaml:"provider" json:"provider" validate:"required,oneof=heygen anam tevus"`
	Tier                string   `yaml:"tier" json:"tier"`
	MonthlyPriceUSD     float64  `yaml:"monthly_price_usd" json:"monthly_price_usd" validate:"gte=0"`
	IncludedMinutes     int      `yaml:"included_minutes" json:"included_minutes" validate:"gte=0"`
	MaxSessionMinutes   *int     `yaml:"max_session_minutes,omitempty" json:"max_session_minutes,omitempty" validate:"omitempty,gt=0"` // nil = unlimited
	Concurrency         *int     `yaml:"concurrency,omitempty" json:"concurrency,omitempty" validate:"omitempty,gt=0"`                 // nil = unlimited or negotiated
	AdditionalPerMinUSD float64  `yaml:"additional_per_min_usd" json:"additional_per_min_usd" validate:"gte=0"`
	HasInbuiltVoice     bool     `yaml:"has_inbuilt_voice" json:"has_inbuilt_voice"`
}

// IsCustom reports whether the plan is a contact-sales tier without fixed pricing
func (p AvatarPlan) IsCustom() bool {
	return p.MonthlyPriceUSD == 0
}

// Clone returns a deep copy of the plan
func (p AvatarPlan) Clone() AvatarPlan {
	p.MaxSessionMinutes = cloneInt(p.MaxSessionMinutes)
	p.Concurrency = cloneInt(p.Concurrency)
	return p
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// PricingModel discriminates the voice agent pricing variants
type PricingModel string

const (
	ModelTokens    PricingModel = "tokens"
	ModelPerMinute PricingModel = "per-minute"
)

// VoicePricing is implemented only by TokenPricing and PerMinutePricing.
type VoicePricing interface {
	Model() PricingModel
	isVoicePricing()
}

// TokenPricing bills a voice agent by tokens consumed
type TokenPricing struct {
	PricePer1MTokensUSD float64 `yaml:"price_per_1m_tokens_usd" json:"price_per_1m_tokens_usd" validate:"gte=0"`
	TokensPerMinute     float64 `yaml:"tokens_per_minute" json:"tokens_per_minute" validate:"gt=0"`
}

func (TokenPricing) Model() PricingModel { return ModelTokens }
func (TokenPricing) isVoicePricing()     {}

// PerMinutePricing bills a voice agent by usage minutes on top of a monthly base
type PerMinutePricing struct {
	PricePerMinuteUSD float64 `yaml:"price_per_minute_usd" json:"price_per_minute_usd" validate:"gte=0"`
	MonthlyBaseUSD    float64 `yaml:"monthly_base_usd,omitempty" json:"monthly_base_usd,omitempty" validate:"gte=0"`
	Concurrency       *int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty" validate:"omitempty,gt=0"`
}

func (PerMinutePricing) Model() PricingModel { return ModelPerMinute }
func (PerMinutePricing) isVoicePricing()     {}

// VoiceAgent is an optional speech service used instead of a plan's inbuilt voice
type VoiceAgent struct {
	ID      string       `validate:"required"`
	Name    string       `validate:"required"`
	Pricing VoicePricing `validate:"required"`
}

// Concurrency returns the agent's concurrent session limit, or nil when none is declared.
func (v VoiceAgent) Concurrency() *int {
	if p, ok := v.Pricing.(PerMinutePricing); ok {
		return p.Concurrency
	}
	return nil
}

// Clone returns a deep copy of the agent, including its pricing limits
func (v VoiceAgent) Clone() VoiceAgent {
	if p, ok := v.Pricing.(PerMinutePricing); ok {
		p.Concurrency = cloneInt(p.Concurrency)
		v.Pricing = p
	}
	return v
}

// PricingModel returns the discriminator of the agent's pricing variant
func (v VoiceAgent) PricingModel() PricingModel {
	if v.Pricing == nil {
		return ""
	}
	return v.Pricing.Model()
}

// voiceAgentYAML is the on-disk shape of a voice agent
type voiceAgentYAML struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	PricingModel PricingModel `yaml:"pricing_model"`
	Pricing      yaml.Node    `yaml:"pricing"`
}

// UnmarshalYAML decodes the pricing block into the variant named by pricing_model
func (v *VoiceAgent) UnmarshalYAML(node *yaml.Node) error {
	var doc voiceAgentYAML
	if err := node.Decode(&doc); err != nil {
		return err
	}
	if doc.Pricing.Kind == 0 {
		return fmt.Errorf("voice agent %q: missing pricing block", doc.ID)
	}

	p, err := decodeVoicePricing(doc.PricingModel, func(out any) error {
		return doc.Pricing.Decode(out)
	})
	if err != nil {
		return fmt.Errorf("voice agent %q: %w", doc.ID, err)
	}

	*v = VoiceAgent{ID: doc.ID, Name: doc.Name, Pricing: p}
	return nil
}

// voiceAgentJSON is the wire shape of a voice agent
type voiceAgentJSON struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricingModel PricingModel    `json:"pricing_model"`
	Pricing      json.RawMessage `json:"pricing"`
}

// MarshalJSON emits the pricing_model discriminator and only the variant's fields
func (v VoiceAgent) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(v.Pricing)
	if err != nil {
		return nil, err
	}
	return json.Marshal(voiceAgentJSON{
		ID:           v.ID,
		Name:         v.Name,
		PricingModel: v.PricingModel(),
		Pricing:      raw,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON
func (v *VoiceAgent) UnmarshalJSON(data []byte) error {
	var doc voiceAgentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Pricing) == 0 || string(doc.Pricing) == "null" {
		return fmt.Errorf("voice agent %q: missing pricing block", doc.ID)
	}

	p, err := decodeVoicePricing(doc.PricingModel, func(out any) error {
		return json.Unmarshal(doc.Pricing, out)
	})
	if err != nil {
		return fmt.Errorf("voice agent %q: %w", doc.ID, err)
	}

	*v = VoiceAgent{ID: doc.ID, Name: doc.Name, Pricing: p}
	return nil
}

func decodeVoicePricing(model PricingModel, decode func(any) error) (VoicePricing, error) {
	switch model {
	case ModelTokens:
		var p TokenPricing
		if err := decode(&p); err != nil {
			return nil, fmt.Errorf("decoding token pricing: %w", err)
		}
		return p, nil
	case ModelPerMinute:
		var p PerMinutePricing
		if err := decode(&p); err != nil {
			return nil, fmt.Errorf("decoding per-minute pricing: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown pricing model %q", model)
	}
}

// HostingOption is an infrastructure tier priced in local currency
type HostingOption struct {
	ID                  string  `yaml:"id" json:"id" validate:"required"`
	Name                string  `yaml:"name" json:"name" validate:"required"`
	BaseMonthlyLocal    float64 `yaml:"base_monthly_local" json:"base_monthly_local" validate:"gte=0"`
	PerUserMonthlyLocal float64 `yaml:"per_user_monthly_local" json:"per_user_monthly_local" validate:"gte=0"`
	PerCallLocal        float64 `yaml:"per_call_local" json:"per_call_local" validate:"gte=0"`
	StorageGB           int     `yaml:"storage_gb" json:"storage_gb" validate:"gte=0"` // informational
}
