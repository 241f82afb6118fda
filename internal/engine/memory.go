package engine

import (
	"fmt"

	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/pkg/models"
)

// cosmosMinimumRU is the provisioning floor applied when the tier's scaled
// footprint carries no Cosmos throughput of its own.
const cosmosMinimumRU = 10_000.0

// memoryCosts prices the agent memory/state layer. The backend switch is
// exhaustive over the closed set; empty, "default", and unrecognized
// selectors fall back to the tier's own memory configuration so the
// dimension never fails.
func (e *Engine) memoryCosts(selector string, infra sizedInfra, tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	if selector == "" || selector == "default" {
		return e.tierDefaultMemory(tier, "")
	}
	backend, ok := models.ParseMemoryBackend(selector)
	if !ok {
		return e.tierDefaultMemory(tier, selector)
	}

	rates := e.cat.Rates
	switch backend {
	case models.MemoryCosmosDB:
		ru := infra.CosmosRU
		notes := fmt.Sprintf("Provisioned throughput: %.0f RU/s", ru)
		if ru == 0 {
			ru = cosmosMinimumRU
			notes = fmt.Sprintf("Tier footprint has no Cosmos throughput, provisioning floor of %.0f RU/s applied", ru)
		}
		monthly := ru / 100.0 * rates.CosmosMemoryPer100RUHour * hoursPerMonth
		return monthly, []models.CostBreakdown{{
			Category:    "Memory System",
			Subcategory: fmt.Sprintf("Cosmos DB (%s)", tier.Name),
			MonthlyCost: monthly,
			AnnualCost:  monthly * 12,
			Unit:        "RU/s",
			Quantity:    ru,
			Notes:       notes,
			CalculationFormula: fmt.Sprintf("(%.0f RU / 100) x $%.3f/hour x %d hours = $%.2f/month",
				ru, rates.CosmosMemoryPer100RUHour, hoursPerMonth, monthly),
			CostDrivers: []string{
				fmt.Sprintf("Provisioned throughput: %.0f RU/s", ru),
				"Always-on provisioning billed per hour",
			},
			OptimizationTips: []string{
				"Autoscale throughput cuts cost for spiky workloads",
				"TTL policies on conversation state reduce storage RU pressure",
			},
		}}

	case models.MemoryRedis:
		hourly := rates.RedisSmallHourly
		sku := "C1 Standard"
		if tier.Memory.CapacityGB >= rates.RedisLargeThresholdGB {
			hourly = rates.RedisLargeHourly
			sku = "C6 Standard"
		}
		monthly := hourly * hoursPerMonth
		return monthly, []models.CostBreakdown{{
			Category:    "Memory System",
			Subcategory: fmt.Sprintf("Azure Cache for Redis (%s)", tier.Name),
			MonthlyCost: monthly,
			AnnualCost:  monthly * 12,
			Unit:        "GB",
			Quantity:    tier.Memory.CapacityGB,
			Notes:       fmt.Sprintf("%s cache, %.0fGB capacity", sku, tier.Memory.CapacityGB),
			CalculationFormula: fmt.Sprintf("$%.3f/hour x %d hours = $%.2f/month",
				hourly, hoursPerMonth, monthly),
		}}

	case models.MemoryNeo4j:
		nodes := int(infra.Neo4jNodes)
		monthly := rates.Neo4jNodeHourly * float64(nodes) * hoursPerMonth
		return monthly, []models.CostBreakdown{{
			Category:    "Memory System",
			Subcategory: fmt.Sprintf("Neo4j Graph Memory (%s)", tier.Name),
			MonthlyCost: monthly,
			AnnualCost:  monthly * 12,
			Unit:        "nodes",
			Quantity:    float64(nodes),
			Notes:       fmt.Sprintf("%d graph database node(s)", nodes),
			CalculationFormula: fmt.Sprintf("$%.3f/hour x %d node(s) x %d hours = $%.2f/month",
				rates.Neo4jNodeHourly, nodes, hoursPerMonth, monthly),
		}}

	case models.MemoryInMemory:
		return 0, []models.CostBreakdown{{
			Category:    "Memory System",
			Subcategory: "In-Memory Store",
			MonthlyCost: 0,
			AnnualCost:  0,
			Unit:        "GB",
			Quantity:    tier.Memory.CapacityGB,
			Notes:       "No managed service cost. Conversation state does not survive restarts.",
		}}
	}

	return e.tierDefaultMemory(tier, selector)
}

// tierDefaultMemory charges the tier's own memory configuration. A
// non-empty unknownSelector records the substitution in the line item so
// the fallback stays observable.
func (e *Engine) tierDefaultMemory(tier *catalog.ServiceTier, unknownSelector string) (float64, []models.CostBreakdown) {
	monthly := tier.Memory.MonthlyCost
	notes := fmt.Sprintf("Tier default backend: %s, %.0fGB capacity", tier.Memory.Type, tier.Memory.CapacityGB)
	if unknownSelector != "" {
		notes = fmt.Sprintf("Unknown memory type %q, using tier default: %s", unknownSelector, tier.Memory.Type)
	}
	return monthly, []models.CostBreakdown{{
		Category:    "Memory System",
		Subcategory: fmt.Sprintf("%s (%s default)", tier.Memory.Type, tier.Name),
		MonthlyCost: monthly,
		AnnualCost:  monthly * 12,
		Unit:        "GB",
		Quantity:    tier.Memory.CapacityGB,
		Notes:       notes,
	}}
}
