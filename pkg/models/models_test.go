package models

import "testing"

func TestParseDeployment(t *testing.T) {
	tests := []struct {
		in   string
		want Deployment
	}{
		{"on_premise", DeploymentOnPremise},
		{"cloud_api", DeploymentCloudAPI},
		{"", DeploymentCloudAPI},
		{"hybrid", DeploymentCloudAPI},
		{"ON_PREMISE", DeploymentCloudAPI}, // only the exact token selects on-prem
	}
	for _, tt := range tests {
		if got := ParseDeployment(tt.in); got != tt.want {
			t.Errorf("ParseDeployment(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseMemoryBackend(t *testing.T) {
	tests := []struct {
		in     string
		want   MemoryBackend
		wantOK bool
	}{
		{"redis", MemoryRedis, true},
		{"cosmos_db", MemoryCosmosDB, true},
		{"cosmos-db", MemoryCosmosDB, true},
		{"CosmosDB", MemoryCosmosDB, true},
		{"in-memory", MemoryInMemory, true},
		{"neo4j", MemoryNeo4j, true},
		{"", "", false},
		{"default", "", false},
		{"quantum_store", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMemoryBackend(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMemoryBackend(%q) = (%s, %v), want (%s, %v)",
				tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCostRequest_ApplyDefaults(t *testing.T) {
	req := &CostRequest{}
	req.ApplyDefaults()

	if req.AgentType != "sales-coach" {
		t.Errorf("expected default agent sales-coach, got %s", req.AgentType)
	}
	if req.ServiceTier != "standard" {
		t.Errorf("expected default tier standard, got %s", req.ServiceTier)
	}
	if req.NumUsers != 100 || req.QueriesPerUserPerMonth != 1000 {
		t.Errorf("unexpected usage defaults: %d users, %d queries", req.NumUsers, req.QueriesPerUserPerMonth)
	}
	if req.LLMMix["gpt-4o"] != 60.0 {
		t.Errorf("unexpected default mix: %v", req.LLMMix)
	}
	if !req.CachingEnabled() || !req.ReservedEnabled() {
		t.Error("optimization flags should default to enabled")
	}
}

func TestCostRequest_ExplicitFalseSurvivesDefaults(t *testing.T) {
	req := &CostRequest{
		UsePromptCaching:     BoolPtr(false),
		UseReservedInstances: BoolPtr(false),
	}
	req.ApplyDefaults()

	if req.CachingEnabled() {
		t.Error("explicit false for caching must not be overwritten by defaults")
	}
	if req.ReservedEnabled() {
		t.Error("explicit false for reserved must not be overwritten by defaults")
	}
}

func TestAgentCostRequest_ApplyDefaults(t *testing.T) {
	req := &AgentCostRequest{LLMModel: "gpt-4o"}
	req.ApplyDefaults()

	if req.QueriesPerUserPerMonth != 40 {
		t.Errorf("expected 40 default queries, got %d", req.QueriesPerUserPerMonth)
	}
	if req.AvgTokensPerRequest != 5000 {
		t.Errorf("expected 5000 default tokens, got %d", req.AvgTokensPerRequest)
	}
	if req.CacheHitRate != 0.70 {
		t.Errorf("expected 0.70 default cache hit rate, got %f", req.CacheHitRate)
	}
}
