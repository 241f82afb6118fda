// Package models defines the core data structures shared across CostPilot:
// the cost estimation request/response types, itemized breakdown lines, and
// the closed enumerations for tiers, deployment modes, memory backends, and
// GPU classes.
package models

import "strings"

// TierLevel identifies a packaged service offering level.
type TierLevel string

const (
	TierBasic    TierLevel = "basic"
	TierStandard TierLevel = "standard"
	TierPremium  TierLevel = "premium"
)

// Deployment selects how language-model inference is billed: per token via
// a hosted API, or via dedicated GPU capacity. Hybrid appears only as tier
// metadata; requests choose one of the two concrete modes.
type Deployment string

const (
	DeploymentCloudAPI  Deployment = "cloud_api"
	DeploymentOnPremise Deployment = "on_premise"
	DeploymentHybrid    Deployment = "hybrid"
)

// ParseDeployment maps a request string onto a concrete deployment mode.
// Anything that is not exactly on_premise is billed as cloud_api, which is
// how the LLM dimension branches on the value.
func ParseDeployment(s string) Deployment {
	if Deployment(s) == DeploymentOnPremise {
		return DeploymentOnPremise
	}
	return DeploymentCloudAPI
}

// MemoryBackend identifies the agent memory/state layer technology.
type MemoryBackend string

const (
	MemoryCosmosDB MemoryBackend = "cosmos_db"
	MemoryRedis    MemoryBackend = "redis"
	MemoryNeo4j    MemoryBackend = "neo4j"
	MemoryInMemory MemoryBackend = "in_memory"
)

// ParseMemoryBackend normalizes separator and case variants ("cosmos-db",
// "CosmosDB", "in-memory") onto the closed backend set. The second return
// is false for empty, "default", or unrecognized selectors.
func ParseMemoryBackend(s string) (MemoryBackend, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	switch normalized {
	case "cosmos_db", "cosmosdb":
		return MemoryCosmosDB, true
	case "redis":
		return MemoryRedis, true
	case "neo4j":
		return MemoryNeo4j, true
	case "in_memory":
		return MemoryInMemory, true
	default:
		return "", false
	}
}

// GPUClass identifies a GPU hardware class for on-premise inference.
type GPUClass string

const (
	GPUT4   GPUClass = "T4"
	GPUA100 GPUClass = "A100"
	GPUH100 GPUClass = "H100"
)

// CostRequest describes a deployment whose monthly cost should be
// estimated. The boolean optimization flags are pointers so an absent
// field can be distinguished from an explicit false; ApplyDefaults fills
// them in.
type CostRequest struct {
	AgentType      string `json:"agent_type"`
	ServiceTier    string `json:"service_tier"`
	DeploymentType string `json:"deployment_type"`

	NumUsers               int `json:"num_users"`
	QueriesPerUserPerMonth int `json:"queries_per_user_per_month"`
	AvgInputTokens         int `json:"avg_input_tokens"`
	AvgOutputTokens        int `json:"avg_output_tokens"`

	InfrastructureScale float64 `json:"infrastructure_scale"`
	MemoryType          string  `json:"memory_type"`

	// LLMMix maps model id to workload percentage. Tier resolution replaces
	// it with an even split across the tier's allowed models.
	LLMMix map[string]float64 `json:"llm_mix"`

	CacheHitRate         float64 `json:"cache_hit_rate"`
	UsePromptCaching     *bool   `json:"use_prompt_caching"`
	UseReservedInstances *bool   `json:"use_reserved_instances"`

	MCPTools []string `json:"mcp_tools"`
}

// ApplyDefaults fills unset fields with the documented defaults so a
// minimal (or empty) request still produces a full estimate.
func (r *CostRequest) ApplyDefaults() {
	if r.AgentType == "" {
		r.AgentType = "sales-coach"
	}
	if r.ServiceTier == "" {
		r.ServiceTier = string(TierStandard)
	}
	if r.DeploymentType == "" {
		r.DeploymentType = string(DeploymentCloudAPI)
	}
	if r.NumUsers == 0 {
		r.NumUsers = 100
	}
	if r.QueriesPerUserPerMonth == 0 {
		r.QueriesPerUserPerMonth = 1000
	}
	if r.AvgInputTokens == 0 {
		r.AvgInputTokens = 10000
	}
	if r.AvgOutputTokens == 0 {
		r.AvgOutputTokens = 1000
	}
	if r.InfrastructureScale == 0 {
		r.InfrastructureScale = 1.0
	}
	if r.MemoryType == "" {
		r.MemoryType = string(MemoryRedis)
	}
	if r.LLMMix == nil {
		r.LLMMix = map[string]float64{
			"gpt-4o":            60.0,
			"claude-3.5-sonnet": 30.0,
			"llama-3.1-70b":     10.0,
		}
	}
	if r.CacheHitRate == 0 {
		r.CacheHitRate = 0.70
	}
	if r.UsePromptCaching == nil {
		r.UsePromptCaching = BoolPtr(true)
	}
	if r.UseReservedInstances == nil {
		r.UseReservedInstances = BoolPtr(true)
	}
}

// CachingEnabled reports the resolved prompt-caching flag.
func (r *CostRequest) CachingEnabled() bool {
	return r.UsePromptCaching != nil && *r.UsePromptCaching
}

// ReservedEnabled reports the resolved reserved-pricing flag.
func (r *CostRequest) ReservedEnabled() bool {
	return r.UseReservedInstances != nil && *r.UseReservedInstances
}

// BoolPtr returns a pointer to b, for populating optional request flags.
func BoolPtr(b bool) *bool { return &b }

// CostBreakdown is one itemized charge within a cost dimension. Annual
// cost is always monthly cost times twelve.
type CostBreakdown struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	MonthlyCost float64 `json:"monthly_cost"`
	AnnualCost  float64 `json:"annual_cost"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Notes       string  `json:"notes"`

	CalculationFormula string   `json:"calculation_formula,omitempty"`
	CostDrivers        []string `json:"cost_drivers,omitempty"`
	OptimizationTips   []string `json:"optimization_tips,omitempty"`
}

// GlobalUsageMetrics normalizes the estimate into per-user and per-query
// efficiency figures. All divisions are zero-guarded: degenerate inputs
// yield zeros, never errors.
type GlobalUsageMetrics struct {
	TokensPerUserPerMonth       int64   `json:"tokens_per_user_per_month"`
	InputTokensPerUserPerMonth  int64   `json:"input_tokens_per_user_per_month"`
	OutputTokensPerUserPerMonth int64   `json:"output_tokens_per_user_per_month"`
	QueriesPerUserPerMonth      int     `json:"queries_per_user_per_month"`
	StoragePerUserGB            float64 `json:"storage_per_user_gb"`
	CostPerUserPerMonth         float64 `json:"cost_per_user_per_month"`

	TotalUsers           int     `json:"total_users"`
	TotalTokensPerMonth  int64   `json:"total_tokens_per_month"`
	TotalStorageGB       float64 `json:"total_storage_gb"`
	TotalQueriesPerMonth int64   `json:"total_queries_per_month"`

	CacheHitRate      float64 `json:"cache_hit_rate"`
	AvgTokensPerQuery int     `json:"avg_tokens_per_query"`
	CostPerQuery      float64 `json:"cost_per_query"`
	CostPer1KTokens   float64 `json:"cost_per_1k_tokens"`

	Description string `json:"description"`
}

// CostResult is the full itemized estimate for a deployment.
type CostResult struct {
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
	TotalAnnualCost  float64 `json:"total_annual_cost"`

	LLMCosts            float64 `json:"llm_costs"`
	InfrastructureCosts float64 `json:"infrastructure_costs"`
	DataSourceCosts     float64 `json:"data_source_costs"`
	MonitoringCosts     float64 `json:"monitoring_costs"`
	MemorySystemCosts   float64 `json:"memory_system_costs"`
	RetrievalCosts      float64 `json:"retrieval_costs"`
	SecurityCosts       float64 `json:"security_costs"`
	PromptTuningCosts   float64 `json:"prompt_tuning_costs"`
	MCPToolsCosts       float64 `json:"mcp_tools_costs"`

	LLMBreakdown            []CostBreakdown `json:"llm_breakdown"`
	InfrastructureBreakdown []CostBreakdown `json:"infrastructure_breakdown"`
	DataSourceBreakdown     []CostBreakdown `json:"data_source_breakdown"`
	MonitoringBreakdown     []CostBreakdown `json:"monitoring_breakdown"`
	MemorySystemBreakdown   []CostBreakdown `json:"memory_system_breakdown"`
	RetrievalBreakdown      []CostBreakdown `json:"retrieval_breakdown"`
	SecurityBreakdown       []CostBreakdown `json:"security_breakdown"`
	PromptTuningBreakdown   []CostBreakdown `json:"prompt_tuning_breakdown"`
	MCPToolsBreakdown       []CostBreakdown `json:"mcp_tools_breakdown"`

	QueriesPerMonth      int64   `json:"queries_per_month"`
	InputTokensPerMonth  int64   `json:"input_tokens_per_month"`
	OutputTokensPerMonth int64   `json:"output_tokens_per_month"`
	EstimatedDataSizeGB  float64 `json:"estimated_data_size_gb"`

	SavingsFromCaching           float64 `json:"savings_from_caching"`
	SavingsFromReservedInstances float64 `json:"savings_from_reserved_instances"`

	GlobalUsageMetrics GlobalUsageMetrics `json:"global_usage_metrics"`
}

// AgentCostRequest asks for the LLM cost of a single model in isolation,
// without any infrastructure or tier-driven dimensions.
type AgentCostRequest struct {
	LLMModel               string  `json:"llm_model"`
	DeploymentType         string  `json:"deployment_type"`
	ServiceTier            string  `json:"service_tier"`
	NumUsers               int     `json:"num_users"`
	QueriesPerUserPerMonth int     `json:"queries_per_user_per_month"`
	AvgTokensPerRequest    int     `json:"avg_tokens_per_request"`
	CacheHitRate           float64 `json:"cache_hit_rate"`
	UsePromptCaching       *bool   `json:"use_prompt_caching"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (r *AgentCostRequest) ApplyDefaults() {
	if r.DeploymentType == "" {
		r.DeploymentType = string(DeploymentCloudAPI)
	}
	if r.ServiceTier == "" {
		r.ServiceTier = string(TierStandard)
	}
	if r.NumUsers == 0 {
		r.NumUsers = 100
	}
	if r.QueriesPerUserPerMonth == 0 {
		r.QueriesPerUserPerMonth = 40
	}
	if r.AvgTokensPerRequest == 0 {
		r.AvgTokensPerRequest = 5000
	}
	if r.CacheHitRate == 0 {
		r.CacheHitRate = 0.70
	}
	if r.UsePromptCaching == nil {
		r.UsePromptCaching = BoolPtr(true)
	}
}

// CachingEnabled reports the resolved prompt-caching flag.
func (r *AgentCostRequest) CachingEnabled() bool {
	return r.UsePromptCaching != nil && *r.UsePromptCaching
}

// AgentCostResponse is the single-model LLM cost estimate.
type AgentCostResponse struct {
	AgentLLMCostMonthly       float64 `json:"agent_llm_cost_monthly"`
	AgentLLMCostAnnual        float64 `json:"agent_llm_cost_annual"`
	TotalQueriesPerMonth      int64   `json:"total_queries_per_month"`
	TotalInputTokensPerMonth  int64   `json:"total_input_tokens_per_month"`
	TotalOutputTokensPerMonth int64   `json:"total_output_tokens_per_month"`
	LLMModel                  string  `json:"llm_model"`
	DeploymentType            string  `json:"deployment_type"`
}
