// Package catalog holds the static pricing and service tier data for
// CostPilot: the tier registry, per-token LLM prices, GPU hardware
// profiles, regional infrastructure rates, premium data source bundles,
// and add-on tool prices.
//
// A Catalog is built once at process start via Default() and treated as
// immutable for the process lifetime. The engine receives it by reference;
// tests may construct alternate catalogs without touching global state.
package catalog

import (
	"sort"
	"strings"

	"github.com/agentfleet/costpilot/pkg/models"
)

// ModelPrice is the per-million-token price triple for a hosted model, in
// USD. A zero CachedInputPerMToken means the provider publishes no cached
// prefix price and the cache split does not apply.
type ModelPrice struct {
	Provider             string  `json:"provider"`
	InputPerMToken       float64 `json:"input"`
	OutputPerMToken      float64 `json:"output"`
	CachedInputPerMToken float64 `json:"cached_input,omitempty"`
}

// OnPremModel maps a self-hosted model to the GPU class it runs on.
type OnPremModel struct {
	Provider string          `json:"provider"`
	GPU      models.GPUClass `json:"gpu_type"`
}

// GPUProfile describes one GPU hardware class and its rental cost.
type GPUProfile struct {
	HourlyCost  float64  `json:"hourly_cost"`
	MonthlyCost float64  `json:"monthly_cost"` // hourly x 24 x 30
	MemoryGB    float64  `json:"memory_gb"`
	SuitableFor []string `json:"suitable_for"`
}

// ComputeRate carries the pay-as-you-go and reserved hourly rates for a
// compute SKU, in AUD.
type ComputeRate struct {
	SKU         string
	PayGo       float64
	Reserved1Yr float64
	Reserved3Yr float64
}

// RegionalRates is the AUD rate card for managed infrastructure in the
// deployment region (Sydney).
type RegionalRates struct {
	ComputeNode ComputeRate
	GPUNode     ComputeRate

	SQLPerVCoreHour    float64
	CosmosPer100RUHour float64
	RedisC6Hourly      float64

	StorageHotGBMonth     float64
	StorageCoolGBMonth    float64
	StorageArchiveGBMonth float64

	LogAnalyticsPerGB float64

	// Memory/state layer rates. The Cosmos memory rate differs from the
	// generic database rate because the memory tier is provisioned on a
	// higher-throughput plan.
	CosmosMemoryPer100RUHour float64
	RedisLargeHourly         float64 // capacity >= RedisLargeThresholdGB
	RedisSmallHourly         float64
	RedisLargeThresholdGB    float64
	Neo4jNodeHourly          float64
}

// OpexConfig is the recurring operational overhead of running on-premise
// GPU hardware for a tier, in AUD per month.
type OpexConfig struct {
	PowerCoolingMonthly     float64
	NetworkMonthly          float64
	MaintenanceHoursMonthly float64
	EngineerHourlyRate      float64
}

// Monthly returns the total monthly operational overhead.
func (o OpexConfig) Monthly() float64 {
	return o.PowerCoolingMonthly + o.NetworkMonthly +
		o.MaintenanceHoursMonthly*o.EngineerHourlyRate
}

// AgentInfra is the reference infrastructure footprint of an agent
// workload, reported by the agent catalog endpoints.
type AgentInfra struct {
	AKSNodes      float64 `json:"aks_nodes"`
	GPUNodes      float64 `json:"gpu_nodes"`
	SQLVCores     float64 `json:"sql_vcores"`
	CosmosRU      float64 `json:"cosmos_ru"`
	Neo4jNodes    float64 `json:"neo4j_nodes"`
	StorageHotTB  float64 `json:"storage_hot_tb"`
	StorageCoolTB float64 `json:"storage_cool_tb"`
}

// AgentProfile describes a supported agent workload type.
type AgentProfile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	DataSources    []string   `json:"data_sources"`
	Infrastructure AgentInfra `json:"infrastructure"`
}

// Catalog bundles every static table the engine reads. Construct it with
// Default() and never mutate it afterwards.
type Catalog struct {
	Tiers     map[models.TierLevel]*ServiceTier
	tierOrder []models.TierLevel

	Pricing      map[string]ModelPrice
	DefaultPrice ModelPrice

	OnPrem     map[string]OnPremModel
	GPUs       map[models.GPUClass]GPUProfile
	DefaultGPU models.GPUClass

	Agents map[string]*AgentProfile

	Rates RegionalRates
	Opex  map[models.TierLevel]OpexConfig

	ToolPricing map[string]float64

	// AUDPerUSDRate converts the USD reference prices into the AUD
	// reporting currency: aud = usd / rate.
	AUDPerUSDRate float64
}

// Tier resolves a tier id case-insensitively. Unknown ids silently fall
// back to the standard tier; lookups never fail.
func (c *Catalog) Tier(id string) *ServiceTier {
	if t, ok := c.Tiers[models.TierLevel(strings.ToLower(id))]; ok {
		return t
	}
	return c.Tiers[models.TierStandard]
}

// HasTier reports whether the id names a known tier (case-insensitive).
func (c *Catalog) HasTier(id string) bool {
	_, ok := c.Tiers[models.TierLevel(strings.ToLower(id))]
	return ok
}

// TierLevels returns the tier ids in catalog order.
func (c *Catalog) TierLevels() []models.TierLevel {
	return c.tierOrder
}

// Price returns the price triple for a hosted model, falling back to the
// default triple for unknown model ids.
func (c *Catalog) Price(model string) ModelPrice {
	if p, ok := c.Pricing[model]; ok {
		return p
	}
	return c.DefaultPrice
}

// GPUClassFor returns the GPU class a self-hosted model runs on, falling
// back to the default class for unknown model ids.
func (c *Catalog) GPUClassFor(model string) models.GPUClass {
	if m, ok := c.OnPrem[model]; ok {
		return m.GPU
	}
	return c.DefaultGPU
}

// GPU returns the hardware profile for a GPU class.
func (c *Catalog) GPU(class models.GPUClass) (GPUProfile, bool) {
	p, ok := c.GPUs[class]
	return p, ok
}

// ToAUD converts a USD amount into the AUD reporting currency.
func (c *Catalog) ToAUD(usd float64) float64 {
	return usd / c.AUDPerUSDRate
}

// ToolPrice returns the flat per-assessment price for an add-on tool.
func (c *Catalog) ToolPrice(name string) (float64, bool) {
	p, ok := c.ToolPricing[name]
	return p, ok
}

// Agent returns the profile for an agent workload type.
func (c *Catalog) Agent(id string) (*AgentProfile, bool) {
	a, ok := c.Agents[id]
	return a, ok
}

// AgentIDs returns the known agent type ids in sorted order.
func (c *Catalog) AgentIDs() []string {
	ids := make([]string, 0, len(c.Agents))
	for id := range c.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ModelDetail is the per-model metadata exposed by the tier model listing.
// Hosted models carry token prices; self-hosted models carry GPU details.
type ModelDetail struct {
	ID                   string          `json:"id"`
	Provider             string          `json:"provider"`
	InputPerMToken       float64         `json:"input,omitempty"`
	OutputPerMToken      float64         `json:"output,omitempty"`
	CachedInputPerMToken float64         `json:"cached_input,omitempty"`
	GPUClass             models.GPUClass `json:"gpu_type,omitempty"`
	GPUHourlyCost        float64         `json:"gpu_hourly_cost,omitempty"`
}

// ModelsForTier lists the models a tier may use for the given deployment
// mode, with pricing or GPU metadata attached. The order follows the
// tier's allowed-model list.
func (c *Catalog) ModelsForTier(id string, dep models.Deployment) []ModelDetail {
	tier := c.Tier(id)
	ids := tier.LLMModels[dep]
	details := make([]ModelDetail, 0, len(ids))
	for _, modelID := range ids {
		d := ModelDetail{ID: modelID}
		if dep == models.DeploymentOnPremise {
			m := c.OnPrem[modelID]
			d.Provider = m.Provider
			d.GPUClass = c.GPUClassFor(modelID)
			if gpu, ok := c.GPU(d.GPUClass); ok {
				d.GPUHourlyCost = gpu.HourlyCost
			}
		} else {
			p := c.Price(modelID)
			d.Provider = p.Provider
			d.InputPerMToken = p.InputPerMToken
			d.OutputPerMToken = p.OutputPerMToken
			d.CachedInputPerMToken = p.CachedInputPerMToken
		}
		details = append(details, d)
	}
	return details
}

// TierSummary aggregates a tier's fixed monthly costs for the summary
// endpoint.
type TierSummary struct {
	Tier               string             `json:"tier"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	TargetPricePerUser float64            `json:"target_price_per_user"`
	FixedMonthlyCost   float64            `json:"fixed_monthly_cost"`
	FixedCostBreakdown map[string]float64 `json:"fixed_cost_breakdown"`
	ModelCounts        map[string]int     `json:"available_llm_models_count"`
	Limits             UsageLimits        `json:"limits"`
	Features           TierFeatures       `json:"features"`
}

// Summary builds the fixed-cost summary for a tier (standard fallback for
// unknown ids, like every other tier lookup).
func (c *Catalog) Summary(id string) TierSummary {
	tier := c.Tier(id)
	fixed := map[string]float64{
		"memory":        tier.Memory.MonthlyCost,
		"retrieval":     tier.Retrieval.MonthlyCost,
		"monitoring":    tier.Monitoring.MonthlyCost,
		"prompt_tuning": tier.PromptTuning.MonthlyCost,
		"security":      tier.Security.MonthlyCost,
		"data_sources":  tier.DataSources.MonthlyCost,
	}
	var total float64
	for _, v := range fixed {
		total += v
	}
	return TierSummary{
		Tier:               string(tier.ID),
		Name:               tier.Name,
		Description:        tier.Description,
		TargetPricePerUser: tier.TargetPricePerUserMonthly,
		FixedMonthlyCost:   total,
		FixedCostBreakdown: fixed,
		ModelCounts: map[string]int{
			string(models.DeploymentCloudAPI):  len(tier.LLMModels[models.DeploymentCloudAPI]),
			string(models.DeploymentOnPremise): len(tier.LLMModels[models.DeploymentOnPremise]),
		},
		Limits:   tier.Limits,
		Features: tier.Features,
	}
}

// OnPremiseMonthlyCost estimates the monthly cost of running numGPUs of a
// GPU class plus the tier's operational overhead (power, network,
// maintenance labor). Returns false for an unknown GPU class.
func (c *Catalog) OnPremiseMonthlyCost(gpu models.GPUClass, tierID string, numGPUs int) (float64, bool) {
	profile, ok := c.GPU(gpu)
	if !ok {
		return 0, false
	}
	opex := c.Opex[c.Tier(tierID).ID]
	return profile.MonthlyCost*float64(numGPUs) + opex.Monthly(), true
}
