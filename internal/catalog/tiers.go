package catalog

import "github.com/agentfleet/costpilot/pkg/models"

// InfraConfig is a tier's baseline managed-infrastructure sizing. Storage
// is denominated in GB here; the engine converts to TB when it scales the
// footprint.
type InfraConfig struct {
	AKSNodes      int     `json:"aks_nodes"`
	SQLVCores     int     `json:"sql_vcores"`
	CosmosRU      int     `json:"cosmos_ru"`
	Neo4jNodes    int     `json:"neo4j_nodes"`
	StorageHotGB  float64 `json:"storage_hot_gb"`
	StorageCoolGB float64 `json:"storage_cool_gb"`
	BandwidthGB   float64 `json:"bandwidth_gb"`
	LoadBalancer  string  `json:"load_balancer"`
	ComputeTier   string  `json:"compute_tier"`
}

// MemoryConfig is a tier's default memory/state layer.
type MemoryConfig struct {
	Type               models.MemoryBackend `json:"type"`
	MonthlyCost        float64              `json:"monthly_cost"`
	CapacityGB         float64              `json:"capacity_gb"`
	Persistence        bool                 `json:"persistence"`
	Replication        bool                 `json:"replication"`
	GlobalDistribution bool                 `json:"global_distribution,omitempty"`
}

// RetrievalConfig is a tier's vector retrieval / RAG layer.
type RetrievalConfig struct {
	VectorDB          string  `json:"vector_db"`
	MonthlyCost       float64 `json:"monthly_cost"`
	Dimensions        int     `json:"dimensions"`
	MaxVectors        int64   `json:"max_vectors"`
	Indexing          string  `json:"indexing"`
	MetadataFiltering bool    `json:"metadata_filtering,omitempty"`
	HybridSearch      bool    `json:"hybrid_search,omitempty"`
}

// MonitoringConfig is a tier's observability bundle.
type MonitoringConfig struct {
	APMTool       string   `json:"apm_tool"`
	MonthlyCost   float64  `json:"monthly_cost"`
	Features      []string `json:"features"`
	RetentionDays int      `json:"retention_days"`
	Alerting      bool     `json:"alerting"`
	SLAMonitoring bool     `json:"sla_monitoring,omitempty"`
}

// PromptTuningConfig is a tier's prompt optimization tooling.
type PromptTuningConfig struct {
	Approach          string   `json:"approach"`
	MonthlyCost       float64  `json:"monthly_cost"`
	Features          []string `json:"features"`
	CacheHitRate      float64  `json:"cache_hit_rate,omitempty"`
	PromptCompression bool     `json:"prompt_compression,omitempty"`
}

// SecurityConfig is a tier's security bundle.
type SecurityConfig struct {
	Level       string   `json:"level"`
	MonthlyCost float64  `json:"monthly_cost"`
	Features    []string `json:"features"`
	Compliance  []string `json:"compliance,omitempty"`
}

// DataSourcesConfig is a tier's premium data feed bundle.
type DataSourcesConfig struct {
	Sources     []string `json:"sources"`
	MonthlyCost float64  `json:"monthly_cost"`
}

// UsageLimits caps a tier's usage volumes and mandates its cache hit rate.
type UsageLimits struct {
	MaxQueriesPerUserPerMonth int     `json:"max_queries_per_user_per_month"`
	MaxInputTokens            int     `json:"max_input_tokens"`
	MaxOutputTokens           int     `json:"max_output_tokens"`
	MaxConcurrentUsers        int     `json:"max_concurrent_users"`
	CacheHitRate              float64 `json:"cache_hit_rate"`
}

// TierFeatures are the optimization flags a tier mandates.
type TierFeatures struct {
	UsePromptCaching     bool `json:"use_prompt_caching"`
	UseReservedInstances bool `json:"use_reserved_instances"`
	UseBatchProcessing   bool `json:"use_batch_processing"`
	UseModelDistillation bool `json:"use_model_distillation"`
}

// ServiceTier is one packaged offering level: a bundle of allowed models,
// infrastructure sizing, layer defaults, limits, and feature flags.
type ServiceTier struct {
	ID                        models.TierLevel `json:"id"`
	Name                      string           `json:"name"`
	Description               string           `json:"description"`
	TargetPricePerUserMonthly float64          `json:"target_price_per_user_monthly"`
	DeploymentType            models.Deployment `json:"deployment_type"`

	LLMModels  map[models.Deployment][]string `json:"llm_models"`
	DefaultLLM string                         `json:"default_llm"`

	Infrastructure      InfraConfig `json:"infrastructure"`
	InfrastructureScale float64     `json:"infrastructure_scale"`

	Memory       MemoryConfig       `json:"memory"`
	Retrieval    RetrievalConfig    `json:"retrieval"`
	Monitoring   MonitoringConfig   `json:"monitoring"`
	PromptTuning PromptTuningConfig `json:"prompt_tuning"`
	Security     SecurityConfig     `json:"security"`
	DataSources  DataSourcesConfig  `json:"data_sources"`

	Limits   UsageLimits  `json:"limits"`
	Features TierFeatures `json:"features"`
}

// Model id lists per price band. Cheap models price under $0.5/M input
// tokens, mid-range $0.5-$5, expensive above $5.
var (
	cheapCloudModels = []string{
		"gpt-5-nano", "gemini-1.5-flash-8b", "gpt-4.1-nano", "gpt-4o-mini", "claude-3-haiku",
	}
	midCloudModels = []string{
		"claude-3-5-haiku", "claude-4-5-haiku", "o3-mini", "gpt-4.1", "gpt-4o",
	}
	expensiveCloudModels = []string{
		"o3-deep-research", "o1", "claude-opus-4", "gpt-5-pro", "o3-pro",
		"sonar-pro", "sonar-deep-research",
	}

	cheapOnPremModels = []string{
		"llama-3-8b", "llama-3.1-8b", "mistral-7b", "phi-3-mini", "gemma-7b",
	}
	midOnPremModels = []string{
		"llama-3-70b", "llama-3.1-70b", "mistral-medium", "mixtral-8x7b",
	}
	expensiveOnPremModels = []string{
		"llama-3-405b", "mixtral-8x22b",
	}
)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// buildTiers constructs the three service tiers.
func buildTiers() map[models.TierLevel]*ServiceTier {
	basic := &ServiceTier{
		ID:                        models.TierBasic,
		Name:                      "Basic Tier",
		Description:               "Cost-optimized for startups and experimentation",
		TargetPricePerUserMonthly: 30.0,
		DeploymentType:            models.DeploymentCloudAPI,
		LLMModels: map[models.Deployment][]string{
			models.DeploymentCloudAPI:  cheapCloudModels,
			models.DeploymentOnPremise: cheapOnPremModels,
		},
		DefaultLLM: "gpt-4o-mini",
		Infrastructure: InfraConfig{
			AKSNodes: 2, SQLVCores: 2, CosmosRU: 0, Neo4jNodes: 0,
			StorageHotGB: 20, StorageCoolGB: 100, BandwidthGB: 50,
			LoadBalancer: "basic", ComputeTier: "B2s",
		},
		InfrastructureScale: 0.3,
		Memory: MemoryConfig{
			Type: models.MemoryInMemory, MonthlyCost: 0, CapacityGB: 4,
		},
		Retrieval: RetrievalConfig{
			VectorDB: "in_memory", MonthlyCost: 0,
			Dimensions: 768, MaxVectors: 100_000, Indexing: "flat",
		},
		Monitoring: MonitoringConfig{
			APMTool: "basic_logging", MonthlyCost: 25.0,
			Features:      []string{"basic_logs", "uptime_monitoring"},
			RetentionDays: 7,
		},
		PromptTuning: PromptTuningConfig{
			Approach: "manual", MonthlyCost: 0,
			Features: []string{"manual_prompt_editing"},
		},
		Security: SecurityConfig{
			Level: "basic", MonthlyCost: 50.0,
			Features: []string{"basic_auth", "ssl", "rate_limiting"},
		},
		DataSources: DataSourcesConfig{Sources: nil, MonthlyCost: 0},
		Limits: UsageLimits{
			MaxQueriesPerUserPerMonth: 50,
			MaxInputTokens:            5000,
			MaxOutputTokens:           500,
			MaxConcurrentUsers:        50,
			CacheHitRate:              0.80,
		},
		Features: TierFeatures{
			UsePromptCaching:   true,
			UseBatchProcessing: true,
		},
	}

	standard := &ServiceTier{
		ID:                        models.TierStandard,
		Name:                      "Standard Tier",
		Description:               "Balanced performance and cost for growing businesses",
		TargetPricePerUserMonthly: 149.0,
		DeploymentType:            models.DeploymentHybrid,
		LLMModels: map[models.Deployment][]string{
			models.DeploymentCloudAPI:  concat(cheapCloudModels, midCloudModels),
			models.DeploymentOnPremise: cheapOnPremModels,
		},
		DefaultLLM: "gpt-4o",
		Infrastructure: InfraConfig{
			AKSNodes: 5, SQLVCores: 6, CosmosRU: 15000, Neo4jNodes: 1,
			StorageHotGB: 500, StorageCoolGB: 4000, BandwidthGB: 500,
			LoadBalancer: "standard", ComputeTier: "D4s_v3",
		},
		InfrastructureScale: 0.6,
		Memory: MemoryConfig{
			Type: models.MemoryRedis, MonthlyCost: 558.0, CapacityGB: 26,
			Persistence: true, Replication: true,
		},
		Retrieval: RetrievalConfig{
			VectorDB: "pinecone_starter", MonthlyCost: 70.0,
			Dimensions: 1536, MaxVectors: 5_000_000, Indexing: "hnsw",
		},
		Monitoring: MonitoringConfig{
			APMTool: "app_insights", MonthlyCost: 150.0,
			Features:      []string{"apm", "distributed_tracing", "custom_metrics", "alerting"},
			RetentionDays: 30,
			Alerting:      true,
		},
		PromptTuning: PromptTuningConfig{
			Approach: "prompt_caching", MonthlyCost: 100.0,
			Features:     []string{"prompt_caching", "version_control", "a_b_testing"},
			CacheHitRate: 0.70,
		},
		Security: SecurityConfig{
			Level: "standard", MonthlyCost: 200.0,
			Features: []string{"oauth2", "rbac", "audit_logs", "encryption_at_rest", "ddos_protection"},
		},
		DataSources: DataSourcesConfig{
			Sources:     []string{"linkedin_sales_navigator"},
			MonthlyCost: 1299.0,
		},
		Limits: UsageLimits{
			MaxQueriesPerUserPerMonth: 500,
			MaxInputTokens:            10000,
			MaxOutputTokens:           2000,
			MaxConcurrentUsers:        200,
			CacheHitRate:              0.70,
		},
		Features: TierFeatures{
			UsePromptCaching:     true,
			UseReservedInstances: true,
			UseBatchProcessing:   true,
		},
	}

	premium := &ServiceTier{
		ID:                        models.TierPremium,
		Name:                      "Premium Tier",
		Description:               "Maximum performance with all features for enterprises",
		TargetPricePerUserMonthly: 999.0,
		DeploymentType:            models.DeploymentHybrid,
		LLMModels: map[models.Deployment][]string{
			models.DeploymentCloudAPI:  concat(cheapCloudModels, midCloudModels, expensiveCloudModels),
			models.DeploymentOnPremise: concat(cheapOnPremModels, midOnPremModels, expensiveOnPremModels),
		},
		DefaultLLM: "claude-opus-4",
		Infrastructure: InfraConfig{
			AKSNodes: 12, SQLVCores: 18, CosmosRU: 67500, Neo4jNodes: 3,
			StorageHotGB: 2500, StorageCoolGB: 20000, BandwidthGB: 2000,
			LoadBalancer: "premium", ComputeTier: "E8s_v3",
		},
		InfrastructureScale: 1.5,
		Memory: MemoryConfig{
			Type: models.MemoryCosmosDB, MonthlyCost: 3942.0, CapacityGB: 500,
			Persistence: true, Replication: true, GlobalDistribution: true,
		},
		Retrieval: RetrievalConfig{
			VectorDB: "pinecone_enterprise", MonthlyCost: 500.0,
			Dimensions: 3072, MaxVectors: 50_000_000, Indexing: "hnsw",
			MetadataFiltering: true, HybridSearch: true,
		},
		Monitoring: MonitoringConfig{
			APMTool: "datadog_premium", MonthlyCost: 500.0,
			Features: []string{
				"full_apm", "distributed_tracing", "rum", "synthetics",
				"security_monitoring", "ml_anomaly_detection",
			},
			RetentionDays: 90,
			Alerting:      true,
			SLAMonitoring: true,
		},
		PromptTuning: PromptTuningConfig{
			Approach: "advanced_optimization", MonthlyCost: 500.0,
			Features: []string{
				"prompt_caching", "auto_optimization", "rag_optimization",
				"chain_of_thought", "self_reflection",
			},
			CacheHitRate:      0.85,
			PromptCompression: true,
		},
		Security: SecurityConfig{
			Level: "premium", MonthlyCost: 800.0,
			Features: []string{
				"zero_trust", "advanced_threat_protection", "data_loss_prevention",
				"compliance_monitoring", "penetration_testing",
			},
			Compliance: []string{"SOC2", "HIPAA", "GDPR"},
		},
		DataSources: DataSourcesConfig{
			Sources: []string{
				"linkedin_sales_navigator", "zoominfo", "clearbit",
				"apollo", "salesforce_data_cloud", "6sense",
			},
			MonthlyCost: 5700.0,
		},
		Limits: UsageLimits{
			MaxQueriesPerUserPerMonth: 999999,
			MaxInputTokens:            100000,
			MaxOutputTokens:           10000,
			MaxConcurrentUsers:        1000,
			// Lower mandated cache rate: premium favors fresh responses.
			CacheHitRate: 0.60,
		},
		Features: TierFeatures{
			UsePromptCaching:     true,
			UseReservedInstances: true,
			UseBatchProcessing:   true,
			UseModelDistillation: true,
		},
	}

	return map[models.TierLevel]*ServiceTier{
		models.TierBasic:    basic,
		models.TierStandard: standard,
		models.TierPremium:  premium,
	}
}
