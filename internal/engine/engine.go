// Package engine implements the tier-resolution and cost-aggregation
// engine: it resolves a named service tier and deployment mode into
// concrete computation parameters, prices each cost dimension with its own
// formula, and aggregates the dimensions into consistent totals and
// per-user efficiency metrics.
//
// Every computation is pure over the injected catalog and the request;
// the engine holds no mutable state and is safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/pkg/models"
)

// hoursPerMonth is the billing convention for always-on capacity.
const hoursPerMonth = 730

// ErrUnsupportedAgent is returned when the requested agent workload type
// is not in the catalog. It is the only fatal input condition: every other
// unknown input degrades to a documented default.
var ErrUnsupportedAgent = errors.New("unsupported agent type")

// Engine computes deployment cost estimates against an immutable catalog.
type Engine struct {
	cat *catalog.Catalog
}

// New creates an Engine bound to the given catalog.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Compute produces the full itemized estimate for a request. The request
// is first passed through tier resolution, which overrides the LLM mix,
// cache hit rate, and optimization flags when the tier id is recognized.
func (e *Engine) Compute(req *models.CostRequest) (*models.CostResult, error) {
	e.applyTier(req)

	if _, ok := e.cat.Agent(req.AgentType); !ok {
		return nil, fmt.Errorf("%w: %q; available agent types: %s",
			ErrUnsupportedAgent, req.AgentType, strings.Join(e.cat.AgentIDs(), ", "))
	}

	tier := e.cat.Tier(req.ServiceTier)
	infra := e.sizedInfrastructure(tier, req.InfrastructureScale)

	totalQueries := int64(req.NumUsers) * int64(req.QueriesPerUserPerMonth)
	inputTokens := totalQueries * int64(req.AvgInputTokens)
	outputTokens := totalQueries * int64(req.AvgOutputTokens)

	llmTotal, llmItems := e.llmCosts(req, totalQueries)
	infraTotal, infraItems := e.infrastructureCosts(infra, req.ReservedEnabled())
	dataTotal, dataItems := e.dataSourceCosts(tier)
	monitorTotal, monitorItems := e.monitoringCosts(tier)
	memoryTotal, memoryItems := e.memoryCosts(req.MemoryType, infra, tier)
	retrievalTotal, retrievalItems := e.retrievalCosts(tier)
	securityTotal, securityItems := e.securityCosts(tier)
	tuningTotal, tuningItems := e.promptTuningCosts(tier)
	toolsTotal, toolsItems := e.toolCosts(req.MCPTools, totalQueries)

	cacheSavings, reservedSavings := savings(req, llmTotal, infraTotal)

	// Fixed costs are tier- and infrastructure-driven; the LLM dimension is
	// the only usage-variable bucket.
	fixedMonthly := infraTotal + dataTotal + monitorTotal + memoryTotal +
		retrievalTotal + securityTotal + tuningTotal + toolsTotal
	totalMonthly := fixedMonthly + llmTotal

	return &models.CostResult{
		TotalMonthlyCost: totalMonthly,
		TotalAnnualCost:  totalMonthly * 12,

		LLMCosts:            llmTotal,
		InfrastructureCosts: infraTotal,
		DataSourceCosts:     dataTotal,
		MonitoringCosts:     monitorTotal,
		MemorySystemCosts:   memoryTotal,
		RetrievalCosts:      retrievalTotal,
		SecurityCosts:       securityTotal,
		PromptTuningCosts:   tuningTotal,
		MCPToolsCosts:       toolsTotal,

		LLMBreakdown:            llmItems,
		InfrastructureBreakdown: infraItems,
		DataSourceBreakdown:     dataItems,
		MonitoringBreakdown:     monitorItems,
		MemorySystemBreakdown:   memoryItems,
		RetrievalBreakdown:      retrievalItems,
		SecurityBreakdown:       securityItems,
		PromptTuningBreakdown:   tuningItems,
		MCPToolsBreakdown:       toolsItems,

		QueriesPerMonth:      totalQueries,
		InputTokensPerMonth:  inputTokens,
		OutputTokensPerMonth: outputTokens,
		EstimatedDataSizeGB:  infra.StorageHotTB + infra.StorageCoolTB,

		SavingsFromCaching:           cacheSavings,
		SavingsFromReservedInstances: reservedSavings,

		GlobalUsageMetrics: e.usageMetrics(req, infra, totalQueries, totalMonthly),
	}, nil
}

// SingleModelCost estimates the LLM cost of one model in isolation, with
// no infrastructure or tier-driven dimensions. Input/output volume uses a
// 70/30 split of the average tokens per request.
func (e *Engine) SingleModelCost(req *models.AgentCostRequest) *models.AgentCostResponse {
	totalQueries := int64(req.NumUsers) * int64(req.QueriesPerUserPerMonth)
	avgInput := int(float64(req.AvgTokensPerRequest) * 0.7)
	avgOutput := int(float64(req.AvgTokensPerRequest) * 0.3)

	var monthly float64
	if models.ParseDeployment(req.DeploymentType) == models.DeploymentOnPremise {
		class := e.cat.GPUClassFor(req.LLMModel)
		gpu, _ := e.cat.GPU(class)
		count := gpuCountForTier(req.ServiceTier)
		monthly = e.cat.ToAUD(gpu.HourlyCost * hoursPerMonth * float64(count))
	} else {
		monthly, _, _ = e.cloudModelCost(req.LLMModel, 100.0, totalQueries,
			avgInput, avgOutput, req.CacheHitRate, req.CachingEnabled())
	}

	return &models.AgentCostResponse{
		AgentLLMCostMonthly:       monthly,
		AgentLLMCostAnnual:        monthly * 12,
		TotalQueriesPerMonth:      totalQueries,
		TotalInputTokensPerMonth:  totalQueries * int64(avgInput),
		TotalOutputTokensPerMonth: totalQueries * int64(avgOutput),
		LLMModel:                  req.LLMModel,
		DeploymentType:            req.DeploymentType,
	}
}
