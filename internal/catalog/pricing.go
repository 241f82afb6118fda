package catalog

import "github.com/agentfleet/costpilot/pkg/models"

// hostedPricing is the per-million-token USD rate card for hosted models.
// Models without a published cached-input price carry a zero there.
var hostedPricing = map[string]ModelPrice{
	// Cheap band (< $0.5/M input).
	"gpt-5-nano":          {Provider: "openai", InputPerMToken: 0.05, OutputPerMToken: 0.40, CachedInputPerMToken: 0.005},
	"gemini-1.5-flash-8b": {Provider: "google", InputPerMToken: 0.075, OutputPerMToken: 0.30, CachedInputPerMToken: 0.01875},
	"gpt-4.1-nano":        {Provider: "openai", InputPerMToken: 0.10, OutputPerMToken: 0.40, CachedInputPerMToken: 0.025},
	"gpt-4o-mini":         {Provider: "openai", InputPerMToken: 0.15, OutputPerMToken: 0.60, CachedInputPerMToken: 0.075},
	"claude-3-haiku":      {Provider: "anthropic", InputPerMToken: 0.25, OutputPerMToken: 1.25, CachedInputPerMToken: 0.03},

	// Mid-range band ($0.5-$5/M input).
	"claude-3-5-haiku": {Provider: "anthropic", InputPerMToken: 0.80, OutputPerMToken: 4.00, CachedInputPerMToken: 0.08},
	"claude-4-5-haiku": {Provider: "anthropic", InputPerMToken: 1.00, OutputPerMToken: 5.00, CachedInputPerMToken: 0.10},
	"o3-mini":          {Provider: "openai", InputPerMToken: 1.10, OutputPerMToken: 4.40, CachedInputPerMToken: 0.55},
	"gpt-4.1":          {Provider: "openai", InputPerMToken: 2.00, OutputPerMToken: 8.00, CachedInputPerMToken: 0.50},
	"gpt-4o":           {Provider: "openai", InputPerMToken: 2.50, OutputPerMToken: 10.00, CachedInputPerMToken: 1.25},

	// Expensive / reasoning band (> $5/M input).
	"o3-deep-research":    {Provider: "openai", InputPerMToken: 10.00, OutputPerMToken: 40.00, CachedInputPerMToken: 2.50},
	"o1":                  {Provider: "openai", InputPerMToken: 15.00, OutputPerMToken: 60.00, CachedInputPerMToken: 7.50},
	"claude-opus-4":       {Provider: "anthropic", InputPerMToken: 15.00, OutputPerMToken: 75.00, CachedInputPerMToken: 1.50},
	"gpt-5-pro":           {Provider: "openai", InputPerMToken: 15.00, OutputPerMToken: 120.00},
	"o3-pro":              {Provider: "openai", InputPerMToken: 20.00, OutputPerMToken: 80.00},
	"sonar-pro":           {Provider: "perplexity", InputPerMToken: 3.00, OutputPerMToken: 15.00},
	"sonar-deep-research": {Provider: "perplexity", InputPerMToken: 2.00, OutputPerMToken: 8.00},

	// Outside the tier bands but accepted in caller-supplied mixes.
	"claude-3.5-sonnet": {Provider: "anthropic", InputPerMToken: 3.00, OutputPerMToken: 15.00, CachedInputPerMToken: 0.30},
}

// onPremModels maps self-hosted models to their GPU class.
var onPremModels = map[string]OnPremModel{
	"llama-3-8b":     {Provider: "meta", GPU: models.GPUT4},
	"llama-3.1-8b":   {Provider: "meta", GPU: models.GPUT4},
	"mistral-7b":     {Provider: "mistral", GPU: models.GPUT4},
	"phi-3-mini":     {Provider: "microsoft", GPU: models.GPUT4},
	"gemma-7b":       {Provider: "google", GPU: models.GPUT4},
	"llama-3-70b":    {Provider: "meta", GPU: models.GPUA100},
	"llama-3.1-70b":  {Provider: "meta", GPU: models.GPUA100},
	"mistral-medium": {Provider: "mistral", GPU: models.GPUA100},
	"mixtral-8x7b":   {Provider: "mistral", GPU: models.GPUA100},
	"llama-3-405b":   {Provider: "meta", GPU: models.GPUH100},
	"mixtral-8x22b":  {Provider: "mistral", GPU: models.GPUH100},
}

// gpuProfiles is the GPU rental rate card. Monthly is hourly x 24 x 30.
var gpuProfiles = map[models.GPUClass]GPUProfile{
	models.GPUT4: {
		HourlyCost: 0.35, MonthlyCost: 252.0, MemoryGB: 16,
		SuitableFor: []string{"llama-3-8b", "mistral-7b", "phi-3-mini"},
	},
	models.GPUA100: {
		HourlyCost: 1.50, MonthlyCost: 1080.0, MemoryGB: 40,
		SuitableFor: []string{"llama-3-70b", "mixtral-8x7b"},
	},
	models.GPUH100: {
		HourlyCost: 3.00, MonthlyCost: 2160.0, MemoryGB: 80,
		SuitableFor: []string{"llama-3-405b", "mixtral-8x22b"},
	},
}

// sydneyRates is the AUD rate card for the Sydney region (January 2025).
var sydneyRates = RegionalRates{
	ComputeNode: ComputeRate{SKU: "Standard_D16s_v5", PayGo: 1.44, Reserved1Yr: 0.72, Reserved3Yr: 0.58},
	GPUNode:     ComputeRate{SKU: "Standard_NC6s_v3", PayGo: 3.06, Reserved1Yr: 1.53, Reserved3Yr: 1.22},

	SQLPerVCoreHour:    0.192,
	CosmosPer100RUHour: 0.008,
	RedisC6Hourly:      0.192,

	StorageHotGBMonth:     0.04,
	StorageCoolGBMonth:    0.01,
	StorageArchiveGBMonth: 0.002,

	LogAnalyticsPerGB: 2.30,

	CosmosMemoryPer100RUHour: 0.012,
	RedisLargeHourly:         0.765,
	RedisSmallHourly:         0.096,
	RedisLargeThresholdGB:    6,
	Neo4jNodeHourly:          0.691,
}

// onPremOpex is the per-tier operational overhead of self-hosted GPUs.
var onPremOpex = map[models.TierLevel]OpexConfig{
	models.TierBasic: {
		PowerCoolingMonthly: 100.0, NetworkMonthly: 50.0,
		MaintenanceHoursMonthly: 20, EngineerHourlyRate: 80.0,
	},
	models.TierStandard: {
		PowerCoolingMonthly: 300.0, NetworkMonthly: 150.0,
		MaintenanceHoursMonthly: 40, EngineerHourlyRate: 100.0,
	},
	models.TierPremium: {
		PowerCoolingMonthly: 800.0, NetworkMonthly: 400.0,
		MaintenanceHoursMonthly: 80, EngineerHourlyRate: 120.0,
	},
}

// toolPricing is the flat per-assessment USD price of each add-on tool.
var toolPricing = map[string]float64{
	"research_tool":               0.50,
	"content_generation_tool":     0.30,
	"competitive_intel_tool":      0.75,
	"fog_analysis_tool":           0.40,
	"engagement_excellence_tool":  0.60,
	"impact_theme_generator_tool": 0.35,
	"license_to_sell_tool":        0.25,
	"find_money_validator_tool":   0.45,
	"speech_to_text":              0.20,
}

// agentProfiles lists the supported agent workload types. Only one exists
// today; requests for anything else are rejected.
var agentProfiles = map[string]*AgentProfile{
	"sales-coach": {
		ID:          "sales-coach",
		Name:        "Sales Coach in the Pocket",
		Description: "Multi-agent sales coaching system with 4Cs framework",
		DataSources: []string{
			"ZoomInfo",
			"LinkedIn Sales Navigator",
			"Clearbit",
			"HubSpot/Salesforce CRM",
			"News APIs",
			"Social Media APIs",
			"Company Data APIs",
		},
		Infrastructure: AgentInfra{
			AKSNodes: 8, GPUNodes: 2, SQLVCores: 12, CosmosRU: 45000,
			Neo4jNodes: 2, StorageHotTB: 0.5, StorageCoolTB: 2.0,
		},
	},
}

// Default builds the full immutable catalog used in production.
func Default() *Catalog {
	return &Catalog{
		Tiers:     buildTiers(),
		tierOrder: []models.TierLevel{models.TierBasic, models.TierStandard, models.TierPremium},

		Pricing: hostedPricing,
		// Unknown hosted models price at a mid-range default triple.
		DefaultPrice: ModelPrice{InputPerMToken: 2.50, OutputPerMToken: 10.00, CachedInputPerMToken: 1.25},

		OnPrem:     onPremModels,
		GPUs:       gpuProfiles,
		DefaultGPU: models.GPUA100,

		Agents: agentProfiles,

		Rates: sydneyRates,
		Opex:  onPremOpex,

		ToolPricing: toolPricing,

		AUDPerUSDRate: 0.65,
	}
}
