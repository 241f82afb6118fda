package engine

import (
	"strings"

	"github.com/agentfleet/costpilot/pkg/models"
)

// applyTier rewrites the request's computation parameters with the
// tier-mandated values when the tier id is recognized: an even model mix
// across the tier's allowed models for the chosen deployment mode, the
// tier's cache hit rate, and the tier's optimization flags. Unrecognized
// tier ids leave the caller-supplied values untouched, even though the
// dimension computations themselves will fall back to the standard tier.
func (e *Engine) applyTier(req *models.CostRequest) {
	if !e.cat.HasTier(req.ServiceTier) {
		return
	}
	tier := e.cat.Tier(req.ServiceTier)

	dep := models.ParseDeployment(req.DeploymentType)
	allowed := tier.LLMModels[dep]
	if len(allowed) > 0 {
		share := 100.0 / float64(len(allowed))
		mix := make(map[string]float64, len(allowed))
		for _, m := range allowed {
			mix[m] = share
		}
		req.LLMMix = mix
	}

	req.CacheHitRate = tier.Limits.CacheHitRate
	req.UsePromptCaching = models.BoolPtr(tier.Features.UsePromptCaching)
	req.UseReservedInstances = models.BoolPtr(tier.Features.UseReservedInstances)
}

// gpuCountForTier maps a tier id to the number of GPUs provisioned for
// on-premise inference. Unknown tiers get a single GPU.
func gpuCountForTier(tierID string) int {
	switch models.TierLevel(strings.ToLower(tierID)) {
	case models.TierBasic:
		return 1
	case models.TierStandard:
		return 2
	case models.TierPremium:
		return 4
	default:
		return 1
	}
}
