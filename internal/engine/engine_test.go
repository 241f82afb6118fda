package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/pkg/models"
)

func newTestEngine() *Engine {
	return New(catalog.Default())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func defaultRequest() *models.CostRequest {
	req := &models.CostRequest{}
	req.ApplyDefaults()
	return req
}

func TestCompute_TotalsAreConsistent(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.Compute(defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dims := result.LLMCosts + result.InfrastructureCosts + result.DataSourceCosts +
		result.MonitoringCosts + result.MemorySystemCosts + result.RetrievalCosts +
		result.SecurityCosts + result.PromptTuningCosts + result.MCPToolsCosts
	if !almostEqual(result.TotalMonthlyCost, dims) {
		t.Errorf("total %f does not equal sum of dimensions %f", result.TotalMonthlyCost, dims)
	}
	if !almostEqual(result.TotalAnnualCost, result.TotalMonthlyCost*12) {
		t.Errorf("annual %f is not 12x monthly %f", result.TotalAnnualCost, result.TotalMonthlyCost)
	}

	sumItems := func(items []models.CostBreakdown) float64 {
		var s float64
		for _, item := range items {
			s += item.MonthlyCost
			if !almostEqual(item.AnnualCost, item.MonthlyCost*12) {
				t.Errorf("item %s: annual %f is not 12x monthly", item.Subcategory, item.AnnualCost)
			}
		}
		return s
	}
	checks := []struct {
		name  string
		total float64
		items []models.CostBreakdown
	}{
		{"llm", result.LLMCosts, result.LLMBreakdown},
		{"infrastructure", result.InfrastructureCosts, result.InfrastructureBreakdown},
		{"data_sources", result.DataSourceCosts, result.DataSourceBreakdown},
		{"monitoring", result.MonitoringCosts, result.MonitoringBreakdown},
		{"memory", result.MemorySystemCosts, result.MemorySystemBreakdown},
		{"retrieval", result.RetrievalCosts, result.RetrievalBreakdown},
		{"security", result.SecurityCosts, result.SecurityBreakdown},
		{"prompt_tuning", result.PromptTuningCosts, result.PromptTuningBreakdown},
		{"mcp_tools", result.MCPToolsCosts, result.MCPToolsBreakdown},
	}
	for _, c := range checks {
		if !almostEqual(c.total, sumItems(c.items)) {
			t.Errorf("%s: dimension total %f does not equal sum of its items", c.name, c.total)
		}
	}
}

func TestCompute_BasicTierCloudScenario(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "basic"
	req.MemoryType = "default" // basic tier defaults to the free in-memory store

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.LLMCosts <= 0 {
		t.Errorf("expected positive LLM total, got %f", result.LLMCosts)
	}
	if len(result.LLMBreakdown) != 5 {
		t.Fatalf("expected 5 LLM items for the basic even mix, got %d", len(result.LLMBreakdown))
	}
	// Each model carries 20% of 100k queries: 20k queries x 11k tokens each.
	wantQuantity := 20_000.0 * (10_000 + 1_000)
	for _, item := range result.LLMBreakdown {
		if !almostEqual(item.Quantity, wantQuantity) {
			t.Errorf("item %s: quantity %f, want %f", item.Subcategory, item.Quantity, wantQuantity)
		}
	}

	// Basic tier zeros: no premium data, in-memory state, free retrieval
	// and manual prompt tuning.
	if result.DataSourceCosts != 0 || result.MemorySystemCosts != 0 ||
		result.RetrievalCosts != 0 || result.PromptTuningCosts != 0 {
		t.Errorf("basic tier should zero data/memory/retrieval/tuning, got %f/%f/%f/%f",
			result.DataSourceCosts, result.MemorySystemCosts,
			result.RetrievalCosts, result.PromptTuningCosts)
	}
	if result.MCPToolsCosts != 0 {
		t.Errorf("no tools selected, got %f", result.MCPToolsCosts)
	}
	if result.SecurityCosts != 50 || result.MonitoringCosts != 25 {
		t.Errorf("unexpected basic fixed costs: security %f, monitoring %f",
			result.SecurityCosts, result.MonitoringCosts)
	}
}

func TestCompute_UnsupportedAgent(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.AgentType = "crypto-bot"

	_, err := eng.Compute(req)
	if !errors.Is(err, ErrUnsupportedAgent) {
		t.Fatalf("expected ErrUnsupportedAgent, got %v", err)
	}
	if !strings.Contains(err.Error(), "sales-coach") {
		t.Errorf("error should list valid agent types, got: %v", err)
	}
}

func TestApplyTier_OverridesRequest(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "basic"
	req.LLMMix = map[string]float64{"gpt-4o": 100}
	req.CacheHitRate = 0.10
	req.UseReservedInstances = models.BoolPtr(true)

	eng.applyTier(req)

	if len(req.LLMMix) != 5 {
		t.Fatalf("expected even mix over 5 basic cloud models, got %d entries", len(req.LLMMix))
	}
	for model, pct := range req.LLMMix {
		if !almostEqual(pct, 20.0) {
			t.Errorf("model %s: expected 20%% share, got %f", model, pct)
		}
	}
	if !almostEqual(req.CacheHitRate, 0.80) {
		t.Errorf("expected basic cache hit rate 0.80, got %f", req.CacheHitRate)
	}
	if !req.CachingEnabled() {
		t.Error("basic tier mandates prompt caching on")
	}
	if req.ReservedEnabled() {
		t.Error("basic tier mandates reserved instances off")
	}
}

func TestApplyTier_UnknownTierLeavesRequestUntouched(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "enterprise-platinum"
	req.LLMMix = map[string]float64{"gpt-4o": 100}
	req.CacheHitRate = 0.42

	eng.applyTier(req)

	if len(req.LLMMix) != 1 || req.LLMMix["gpt-4o"] != 100 {
		t.Errorf("mix should be untouched for unknown tiers, got %v", req.LLMMix)
	}
	if !almostEqual(req.CacheHitRate, 0.42) {
		t.Errorf("cache hit rate should be untouched, got %f", req.CacheHitRate)
	}
}

func TestCompute_UnknownTierPricesLikeStandard(t *testing.T) {
	eng := newTestEngine()

	unknown := defaultRequest()
	unknown.ServiceTier = "enterprise-platinum"
	standard := defaultRequest()
	standard.ServiceTier = "standard"

	ru, err := eng.Compute(unknown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs, err := eng.Compute(standard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Tier-driven dimensions fall back to the standard tier.
	if !almostEqual(ru.MonitoringCosts, rs.MonitoringCosts) {
		t.Errorf("monitoring: %f vs standard %f", ru.MonitoringCosts, rs.MonitoringCosts)
	}
	if !almostEqual(ru.DataSourceCosts, rs.DataSourceCosts) {
		t.Errorf("data sources: %f vs standard %f", ru.DataSourceCosts, rs.DataSourceCosts)
	}
	if !almostEqual(ru.SecurityCosts, rs.SecurityCosts) {
		t.Errorf("security: %f vs standard %f", ru.SecurityCosts, rs.SecurityCosts)
	}
}

func TestCompute_TierCaseInsensitive(t *testing.T) {
	eng := newTestEngine()

	upper := defaultRequest()
	upper.ServiceTier = "PREMIUM"
	lower := defaultRequest()
	lower.ServiceTier = "premium"

	ru, err := eng.Compute(upper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rl, err := eng.Compute(lower)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(ru.TotalMonthlyCost, rl.TotalMonthlyCost) {
		t.Errorf("PREMIUM %f and premium %f should price identically",
			ru.TotalMonthlyCost, rl.TotalMonthlyCost)
	}
	if !almostEqual(ru.LLMCosts, rl.LLMCosts) {
		t.Errorf("LLM dimension differs across tier id casing")
	}
}

func TestCloudLLMCosts_KnownMix(t *testing.T) {
	eng := newTestEngine()

	// Unknown tier so the caller-supplied mix survives resolution.
	req := &models.CostRequest{
		AgentType:              "sales-coach",
		ServiceTier:            "custom",
		DeploymentType:         "cloud_api",
		NumUsers:               1,
		QueriesPerUserPerMonth: 1000,
		AvgInputTokens:         10000,
		AvgOutputTokens:        1000,
		InfrastructureScale:    1.0,
		MemoryType:             "redis",
		LLMMix:                 map[string]float64{"gpt-4o": 100},
		CacheHitRate:           0.5,
		UsePromptCaching:       models.BoolPtr(false),
		UseReservedInstances:   models.BoolPtr(false),
	}

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10M input at $2.50/M plus 1M output at $10/M = $35 USD, reported in AUD.
	want := 35.0 / 0.65
	if !almostEqual(result.LLMCosts, want) {
		t.Errorf("LLM cost %f, want %f", result.LLMCosts, want)
	}
	if len(result.LLMBreakdown) != 1 {
		t.Fatalf("expected 1 LLM line item, got %d", len(result.LLMBreakdown))
	}
	if !almostEqual(result.LLMBreakdown[0].Quantity, 11_000_000) {
		t.Errorf("expected 11M token quantity, got %f", result.LLMBreakdown[0].Quantity)
	}

	if result.SavingsFromCaching != 0 {
		t.Errorf("caching disabled should yield zero cache savings, got %f", result.SavingsFromCaching)
	}
	if result.SavingsFromReservedInstances != 0 {
		t.Errorf("reserved disabled should yield zero reserved savings, got %f", result.SavingsFromReservedInstances)
	}
}

func TestCloudLLMCosts_CachedInputSplit(t *testing.T) {
	eng := newTestEngine()

	cost, inTokens, outTokens := eng.cloudModelCost("gpt-4o", 100, 1000, 10000, 1000, 0.70, true)

	// 7M cached input at $1.25/M, 3M uncached at $2.50/M, 1M output at $10/M.
	wantUSD := 7.0*1.25 + 3.0*2.5 + 1.0*10
	if !almostEqual(cost, wantUSD/0.65) {
		t.Errorf("cached split cost %f, want %f", cost, wantUSD/0.65)
	}
	if inTokens != 10_000_000 || outTokens != 1_000_000 {
		t.Errorf("unexpected token volumes: in=%f out=%f", inTokens, outTokens)
	}
}

func TestCloudLLMCosts_DeterministicOrder(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "custom"
	req.LLMMix = map[string]float64{"o1": 50, "claude-3-haiku": 50}

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.LLMBreakdown) != 2 {
		t.Fatalf("expected 2 LLM items, got %d", len(result.LLMBreakdown))
	}
	if !strings.HasPrefix(result.LLMBreakdown[0].Subcategory, "claude-3-haiku") {
		t.Errorf("items not in sorted model order: %s first", result.LLMBreakdown[0].Subcategory)
	}
}

func TestOnPremLLMCosts_GPUCountFollowsTier(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{"basic", 1},
		{"standard", 2},
		{"premium", 4},
		{"PREMIUM", 4},
		{"unknown", 1},
	}
	for _, tt := range tests {
		if got := gpuCountForTier(tt.tier); got != tt.want {
			t.Errorf("gpuCountForTier(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestOnPremLLMCosts_SingleModel(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "custom" // unknown: mix survives, 1 GPU
	req.DeploymentType = "on_premise"
	req.LLMMix = map[string]float64{"llama-3.1-70b": 100}

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A100 at $1.50/hour x 730 hours x 1 GPU, in AUD.
	want := 1.5 * 730 / 0.65
	if !almostEqual(result.LLMCosts, want) {
		t.Errorf("on-prem LLM cost %f, want %f", result.LLMCosts, want)
	}
	if len(result.LLMBreakdown) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.LLMBreakdown))
	}
	item := result.LLMBreakdown[0]
	if !almostEqual(item.Quantity, 730) {
		t.Errorf("expected 730 GPU hours, got %f", item.Quantity)
	}
	if item.CalculationFormula == "" || len(item.CostDrivers) == 0 {
		t.Error("on-prem items should carry formula and cost drivers")
	}
}

func TestMemoryCosts_CosmosFloor(t *testing.T) {
	eng := newTestEngine()

	// Basic tier carries zero Cosmos RU; the floor applies.
	req := defaultRequest()
	req.ServiceTier = "basic"
	req.MemoryType = "cosmos_db"

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 10000.0 / 100 * 0.012 * 730
	if !almostEqual(result.MemorySystemCosts, want) {
		t.Errorf("cosmos memory cost %f, want %f", result.MemorySystemCosts, want)
	}
	if !almostEqual(result.MemorySystemBreakdown[0].Quantity, 10000) {
		t.Errorf("expected floor of 10000 RU, got %f", result.MemorySystemBreakdown[0].Quantity)
	}
}

func TestMemoryCosts_RedisCapacityBands(t *testing.T) {
	eng := newTestEngine()

	// Standard tier capacity (26GB) is above the large-cache threshold.
	req := defaultRequest()
	req.MemoryType = "redis"

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 0.765 * 730
	if !almostEqual(result.MemorySystemCosts, want) {
		t.Errorf("redis memory cost %f, want %f", result.MemorySystemCosts, want)
	}

	// Basic tier capacity (4GB) falls in the small band.
	req = defaultRequest()
	req.ServiceTier = "basic"
	req.MemoryType = "redis"

	result, err = eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = 0.096 * 730
	if !almostEqual(result.MemorySystemCosts, want) {
		t.Errorf("small redis memory cost %f, want %f", result.MemorySystemCosts, want)
	}
}

func TestMemoryCosts_InMemoryIsFree(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.MemoryType = "in-memory"

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MemorySystemCosts != 0 {
		t.Errorf("in-memory should be free, got %f", result.MemorySystemCosts)
	}
	if !strings.Contains(result.MemorySystemBreakdown[0].Notes, "survive") {
		t.Errorf("in-memory item should warn about persistence: %q", result.MemorySystemBreakdown[0].Notes)
	}
}

func TestMemoryCosts_UnknownTypeUsesTierDefault(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.MemoryType = "quantum_store"

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(result.MemorySystemCosts, 558.0) {
		t.Errorf("expected standard tier default memory cost 558, got %f", result.MemorySystemCosts)
	}
	if !strings.Contains(result.MemorySystemBreakdown[0].Notes, "quantum_store") {
		t.Errorf("substitution should be observable in notes: %q", result.MemorySystemBreakdown[0].Notes)
	}
}

func TestToolCosts_FlatChargeAndUnknownSkipped(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.MCPTools = []string{"speech_to_text", "bogus_tool"}

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(result.MCPToolsCosts, 0.20) {
		t.Errorf("expected flat 0.20 charge, got %f", result.MCPToolsCosts)
	}
	if len(result.MCPToolsBreakdown) != 1 {
		t.Errorf("unknown tools should be skipped without a line item, got %d items",
			len(result.MCPToolsBreakdown))
	}
}

func TestCompute_ReservedSavings(t *testing.T) {
	eng := newTestEngine()

	// Standard tier mandates reserved pricing on.
	result, err := eng.Compute(defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(result.SavingsFromReservedInstances, result.InfrastructureCosts*0.5) {
		t.Errorf("reserved savings %f should be half the infra total %f",
			result.SavingsFromReservedInstances, result.InfrastructureCosts)
	}
	if !almostEqual(result.SavingsFromCaching, result.LLMCosts*(1-0.70)) {
		t.Errorf("cache savings %f inconsistent with LLM total %f",
			result.SavingsFromCaching, result.LLMCosts)
	}
}

func TestUsageMetrics_ZeroGuards(t *testing.T) {
	eng := newTestEngine()

	// No ApplyDefaults: zero users and queries stay zero.
	req := &models.CostRequest{
		AgentType:   "sales-coach",
		ServiceTier: "standard",
	}

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := result.GlobalUsageMetrics
	if m.CostPerUserPerMonth != 0 || m.CostPerQuery != 0 || m.CostPer1KTokens != 0 || m.StoragePerUserGB != 0 {
		t.Errorf("zero inputs should yield zero metrics, got %+v", m)
	}
	if math.IsNaN(m.CostPerQuery) || math.IsInf(m.CostPerQuery, 0) {
		t.Error("metrics must never be NaN or Inf")
	}
}

func TestUsageMetrics_Derivations(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.Compute(defaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := result.GlobalUsageMetrics
	if m.TotalUsers != 100 {
		t.Errorf("expected 100 users, got %d", m.TotalUsers)
	}
	if m.TotalQueriesPerMonth != 100_000 {
		t.Errorf("expected 100k queries, got %d", m.TotalQueriesPerMonth)
	}
	if m.TokensPerUserPerMonth != 11_000*1000 {
		t.Errorf("expected 11M tokens per user, got %d", m.TokensPerUserPerMonth)
	}
	if m.AvgTokensPerQuery != 11_000 {
		t.Errorf("expected 11k tokens per query, got %d", m.AvgTokensPerQuery)
	}

	wantPerUser := math.Round(result.TotalMonthlyCost/100*100) / 100
	if !almostEqual(m.CostPerUserPerMonth, wantPerUser) {
		t.Errorf("cost per user %f, want %f", m.CostPerUserPerMonth, wantPerUser)
	}
}

func TestSingleModelCost_OnPremise(t *testing.T) {
	eng := newTestEngine()

	req := &models.AgentCostRequest{
		LLMModel:       "llama-3.1-70b",
		DeploymentType: "on_premise",
		ServiceTier:    "premium",
	}
	req.ApplyDefaults()

	resp := eng.SingleModelCost(req)

	// A100 at $1.50/hour x 730 hours x 4 GPUs, in AUD.
	want := 1.5 * 730 * 4 / 0.65
	if !almostEqual(resp.AgentLLMCostMonthly, want) {
		t.Errorf("on-prem single model cost %f, want %f", resp.AgentLLMCostMonthly, want)
	}
	if !almostEqual(resp.AgentLLMCostAnnual, want*12) {
		t.Errorf("annual %f is not 12x monthly", resp.AgentLLMCostAnnual)
	}
}

func TestSingleModelCost_CloudSplit(t *testing.T) {
	eng := newTestEngine()

	req := &models.AgentCostRequest{LLMModel: "gpt-4o"}
	req.ApplyDefaults()

	resp := eng.SingleModelCost(req)

	// 100 users x 40 queries, 5000 tokens split 70/30.
	if resp.TotalQueriesPerMonth != 4000 {
		t.Errorf("expected 4000 queries, got %d", resp.TotalQueriesPerMonth)
	}
	if resp.TotalInputTokensPerMonth != 4000*3500 {
		t.Errorf("expected 14M input tokens, got %d", resp.TotalInputTokensPerMonth)
	}
	if resp.TotalOutputTokensPerMonth != 4000*1500 {
		t.Errorf("expected 6M output tokens, got %d", resp.TotalOutputTokensPerMonth)
	}

	// 9.8M cached at $1.25/M + 4.2M uncached at $2.50/M + 6M output at $10/M.
	wantUSD := 9.8*1.25 + 4.2*2.5 + 6.0*10
	if !almostEqual(resp.AgentLLMCostMonthly, wantUSD/0.65) {
		t.Errorf("cloud single model cost %f, want %f", resp.AgentLLMCostMonthly, wantUSD/0.65)
	}
}

func TestInfrastructureCosts_ScaleAndStorage(t *testing.T) {
	eng := newTestEngine()

	req := defaultRequest()
	req.ServiceTier = "basic"
	req.InfrastructureScale = 2.0

	result, err := eng.Compute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Basic: 2 AKS nodes x2 scale at reserved-off? Basic mandates reserved off,
	// so pay-as-you-go: 4 x 1.44 x 730. SQL: 4 vCores x 0.192 x 730.
	// Storage: hot 40GB x 0.04 + cool 200GB x 0.01.
	wantAKS := 4 * 1.44 * 730.0
	wantSQL := 4 * 0.192 * 730.0
	wantStorage := 40*0.04 + 200*0.01
	want := wantAKS + wantSQL + wantStorage
	if !almostEqual(result.InfrastructureCosts, want) {
		t.Errorf("infra cost %f, want %f", result.InfrastructureCosts, want)
	}

	// Scaled data size is reported in GB from the TB footprint.
	wantGB := (40.0 + 200.0) / 1024
	if !almostEqual(result.EstimatedDataSizeGB, wantGB) {
		t.Errorf("estimated data size %f, want %f", result.EstimatedDataSizeGB, wantGB)
	}
}
