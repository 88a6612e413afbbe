// ABOUTME: Static pricing catalog loaded from embedded YAML at process start
// ABOUTME: Exposes read-only plan collections and USD to local currency conversion

package pricing

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// CurrencyUSD is the unit avatar and voice vendors bill in
	CurrencyUSD = "USD"
	// LocalCurrency is the unit budgets, hosting, and totals are expressed in
	LocalCurrency = "INR"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// catalogDoc is the YAML document layout
type catalogDoc struct {
	USDToLocalRate   float64         `yaml:"usd_to_local_rate" validate:"gt=0"`
	MiscMonthlyLocal float64         `yaml:"misc_monthly_local" validate:"gte=0"`
	AvatarPlans      []AvatarPlan    `yaml:"avatar_plans" validate:"required,min=1,unique=ID,dive"`
	VoiceAgents      []VoiceAgent    `yaml:"voice_agents" validate:"unique=ID,dive"`
	HostingOptions   []HostingOption `yaml:"hosting_options" validate:"required,min=1,unique=ID,dive"`
}

// Catalog is an immutable set of priced offerings plus currency constants.
// Accessors return deep copies so callers cannot mutate shared state.
type Catalog struct {
	usdToLocal  float64
	miscMonthly float64
	avatarPlans []AvatarPlan
	voiceAgents []VoiceAgent
	hosting     []HostingOption
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(bytes.NewReader(embeddedCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded pricing catalog is invalid: %v", err))
	}
	return c
})

// Default returns the catalog compiled into the binary
func Default() *Catalog {
	return defaultCatalog()
}

// LoadFile reads and validates a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pricing catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads and validates a catalog from YAML
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("pricing catalog is empty")
		}
		return nil, fmt.Errorf("parsing pricing catalog: %w", err)
	}

	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing catalog: %w", err)
	}

	return &Catalog{
		usdToLocal:  doc.USDToLocalRate,
		miscMonthly: doc.MiscMonthlyLocal,
		avatarPlans: doc.AvatarPlans,
		voiceAgents: doc.VoiceAgents,
		hosting:     doc.HostingOptions,
	}, nil
}

func (d *catalogDoc) validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	// The union field is an interface, so its variant is checked on its own
	for _, agent := range d.VoiceAgents {
		if err := validate.Struct(agent.Pricing); err != nil {
			return fmt.Errorf("voice agent %q: %w", agent.ID, err)
		}
	}
	return nil
}

// New builds a catalog from in-memory collections after validating them.
func New(usdToLocal, miscMonthly float64, plans []AvatarPlan, agents []VoiceAgent, hosting []HostingOption) (*Catalog, error) {
	doc := catalogDoc{
		USDToLocalRate:   usdToLocal,
		MiscMonthlyLocal: miscMonthly,
		AvatarPlans:      cloneAll(plans, AvatarPlan.Clone),
		VoiceAgents:      cloneAll(agents, VoiceAgent.Clone),
		HostingOptions:   slices.Clone(hosting),
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing catalog: %w", err)
	}
	return &Catalog{
		usdToLocal:  doc.USDToLocalRate,
		miscMonthly: doc.MiscMonthlyLocal,
		avatarPlans: doc.AvatarPlans,
		voiceAgents: doc.VoiceAgents,
		hosting:     doc.HostingOptions,
	}, nil
}

// AvatarPlans returns all avatar plans in catalog order, custom tiers included
func (c *Catalog) AvatarPlans() []AvatarPlan {
	return cloneAll(c.avatarPlans, AvatarPlan.Clone)
}

// VoiceAgents returns all voice agents in catalog order
func (c *Catalog) VoiceAgents() []VoiceAgent {
	return cloneAll(c.voiceAgents, VoiceAgent.Clone)
}

// HostingOptions returns all hosting options in catalog order
func (c *Catalog) HostingOptions() []HostingOption {
	return slices.Clone(c.hosting)
}

// AvatarPlan looks up a plan by ID
func (c *Catalog) AvatarPlan(id string) (AvatarPlan, bool) {
	i := slices.IndexFunc(c.avatarPlans, func(p AvatarPlan) bool { return p.ID == id })
	if i < 0 {
		return AvatarPlan{}, false
	}
	return c.avatarPlans[i].Clone(), true
}

// VoiceAgent looks up a voice agent by ID
func (c *Catalog) VoiceAgent(id string) (VoiceAgent, bool) {
	i := slices.IndexFunc(c.voiceAgents, func(v VoiceAgent) bool { return v.ID == id })
	if i < 0 {
		return VoiceAgent{}, false
	}
	return c.voiceAgents[i].Clone(), true
}

// HostingOption looks up a hosting option by ID
func (c *Catalog) HostingOption(id string) (HostingOption, bool) {
	i := slices.IndexFunc(c.hosting, func(h HostingOption) bool { return h.ID == id })
	if i < 0 {
		return HostingOption{}, false
	}
	return c.hosting[i], true
}

// USDToLocalRate returns how many local currency units one USD buys
func (c *Catalog) USDToLocalRate() float64 {
	return c.usdToLocal
}

// MiscMonthlyLocal returns the fixed miscellaneous monthly expense
func (c *Catalog) MiscMonthlyLocal() float64 {
	return c.miscMonthly
}

// ToLocal converts a USD amount to local currency
func (c *Catalog) ToLocal(usd float64) float64 {
	return usd * c.usdToLocal
}

// ToUSD converts a local currency amount to USD
func (c *Catalog) ToUSD(local float64) float64 {
	return local / c.usdToLocal
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}
