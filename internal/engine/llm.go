package engine

import (
	"fmt"
	"sort"

	"github.com/agentfleet/costpilot/pkg/models"
)

const tokensPerMillion = 1_000_000.0

// sortedMixModels returns the mix's model ids in sorted order so line
// items come out in a deterministic sequence.
func sortedMixModels(mix map[string]float64) []string {
	ids := make([]string, 0, len(mix))
	for id := range mix {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// llmCosts prices the LLM dimension, branching on deployment mode. This
// is the only dimension converted from USD reference prices to AUD.
func (e *Engine) llmCosts(req *models.CostRequest, totalQueries int64) (float64, []models.CostBreakdown) {
	if models.ParseDeployment(req.DeploymentType) == models.DeploymentOnPremise {
		return e.onPremLLMCosts(req)
	}
	return e.cloudLLMCosts(req, totalQueries)
}

// cloudModelCost prices one hosted model's share of the workload. Returns
// the AUD monthly cost plus the model's input and output token volumes.
func (e *Engine) cloudModelCost(model string, percentage float64, totalQueries int64,
	avgInput, avgOutput int, cacheHitRate float64, useCaching bool) (float64, float64, float64) {

	pricing := e.cat.Price(model)
	modelQueries := float64(totalQueries) * percentage / 100.0
	inputTokens := modelQueries * float64(avgInput)
	outputTokens := modelQueries * float64(avgOutput)

	var inputCost float64
	if useCaching && cacheHitRate > 0 && pricing.CachedInputPerMToken > 0 {
		cached := inputTokens * cacheHitRate
		uncached := inputTokens - cached
		inputCost = uncached/tokensPerMillion*pricing.InputPerMToken +
			cached/tokensPerMillion*pricing.CachedInputPerMToken
	} else {
		inputCost = inputTokens / tokensPerMillion * pricing.InputPerMToken
	}
	outputCost := outputTokens / tokensPerMillion * pricing.OutputPerMToken

	return e.cat.ToAUD(inputCost + outputCost), inputTokens, outputTokens
}

func (e *Engine) cloudLLMCosts(req *models.CostRequest, totalQueries int64) (float64, []models.CostBreakdown) {
	var total float64
	var items []models.CostBreakdown

	for _, model := range sortedMixModels(req.LLMMix) {
		percentage := req.LLMMix[model]
		if percentage <= 0 {
			continue
		}
		cost, inputTokens, outputTokens := e.cloudModelCost(model, percentage,
			totalQueries, req.AvgInputTokens, req.AvgOutputTokens,
			req.CacheHitRate, req.CachingEnabled())
		total += cost

		items = append(items, models.CostBreakdown{
			Category:    "LLM - Cloud API",
			Subcategory: fmt.Sprintf("%s (%.1f%%)", model, percentage),
			MonthlyCost: cost,
			AnnualCost:  cost * 12,
			Unit:        "tokens",
			Quantity:    inputTokens + outputTokens,
			Notes: fmt.Sprintf("Input: %.0f tokens, Output: %.0f tokens, Cache hit rate: %.0f%%",
				inputTokens, outputTokens, req.CacheHitRate*100),
		})
	}
	return total, items
}

func (e *Engine) onPremLLMCosts(req *models.CostRequest) (float64, []models.CostBreakdown) {
	gpuCount := gpuCountForTier(req.ServiceTier)

	var total float64
	var items []models.CostBreakdown

	for _, model := range sortedMixModels(req.LLMMix) {
		percentage := req.LLMMix[model]
		if percentage <= 0 {
			continue
		}
		class := e.cat.GPUClassFor(model)
		gpu, ok := e.cat.GPU(class)
		if !ok {
			continue
		}
		share := percentage / 100.0
		cost := e.cat.ToAUD(gpu.HourlyCost * hoursPerMonth * float64(gpuCount) * share)
		total += cost

		items = append(items, models.CostBreakdown{
			Category:    "LLM - On-Premise",
			Subcategory: fmt.Sprintf("%s on %s (%.1f%%)", model, class, percentage),
			MonthlyCost: cost,
			AnnualCost:  cost * 12,
			Unit:        "gpu_hours",
			Quantity:    hoursPerMonth * float64(gpuCount) * share,
			Notes:       fmt.Sprintf("%d x %s GPU, %.1f%% of workload", gpuCount, class, percentage),
			CalculationFormula: fmt.Sprintf("%d GPUs x $%.2f/hour x %d hours x %.1f%% = $%.2f/month",
				gpuCount, gpu.HourlyCost, hoursPerMonth, percentage, cost),
			CostDrivers: []string{
				fmt.Sprintf("%s hourly rate: $%.2f USD", class, gpu.HourlyCost),
				fmt.Sprintf("GPU count for %s tier: %d", req.ServiceTier, gpuCount),
				fmt.Sprintf("Workload share: %.1f%%", percentage),
			},
			OptimizationTips: gpuOptimizationTips(class),
		})
	}
	return total, items
}

func gpuOptimizationTips(class models.GPUClass) []string {
	switch class {
	case models.GPUT4:
		return []string{
			"Batch inference requests to improve GPU utilization",
			"Quantize models to 8-bit to fit more concurrent sessions",
		}
	case models.GPUH100:
		return []string{
			"Verify the model genuinely needs 80GB of GPU memory",
			"A100 capacity halves the hourly rate for models under 40GB",
		}
	default:
		return []string{
			"Batch inference requests to improve GPU utilization",
			"Smaller distilled models may run on T4 capacity at a quarter of the rate",
		}
	}
}
