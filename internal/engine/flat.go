package engine

import (
	"fmt"
	"strings"

	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/pkg/models"
)

// The five flat dimensions below charge the tier's bundled monthly price
// directly. They vary only in how the bundle is described.

func flatDimension(category, subcategory, unit string, quantity, monthly float64, notes string) (float64, []models.CostBreakdown) {
	return monthly, []models.CostBreakdown{{
		Category:    category,
		Subcategory: subcategory,
		MonthlyCost: monthly,
		AnnualCost:  monthly * 12,
		Unit:        unit,
		Quantity:    quantity,
		Notes:       notes,
	}}
}

func (e *Engine) dataSourceCosts(tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	ds := tier.DataSources
	if ds.MonthlyCost <= 0 {
		return flatDimension("Data Sources", "No Premium Data Sources", "subscriptions", 0, 0,
			fmt.Sprintf("No premium data feeds bundled with the %s", tier.Name))
	}
	return flatDimension("Data Sources",
		fmt.Sprintf("%s Data Bundle", tier.Name),
		"subscriptions", float64(len(ds.Sources)), ds.MonthlyCost,
		fmt.Sprintf("Included sources: %s", strings.Join(ds.Sources, ", ")))
}

func (e *Engine) monitoringCosts(tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	mon := tier.Monitoring
	return flatDimension("Monitoring",
		fmt.Sprintf("%s (%s)", mon.APMTool, tier.Name),
		"service", 1, mon.MonthlyCost,
		fmt.Sprintf("Features: %s. Retention: %d days",
			strings.Join(mon.Features, ", "), mon.RetentionDays))
}

func (e *Engine) retrievalCosts(tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	ret := tier.Retrieval
	return flatDimension("Retrieval",
		fmt.Sprintf("%s (%s)", ret.VectorDB, tier.Name),
		"vectors", float64(ret.MaxVectors), ret.MonthlyCost,
		fmt.Sprintf("Up to %d vectors at %d dimensions, %s indexing",
			ret.MaxVectors, ret.Dimensions, ret.Indexing))
}

func (e *Engine) securityCosts(tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	sec := tier.Security
	notes := fmt.Sprintf("Features: %s", strings.Join(sec.Features, ", "))
	if len(sec.Compliance) > 0 {
		notes += fmt.Sprintf(". Compliance: %s", strings.Join(sec.Compliance, ", "))
	}
	return flatDimension("Security",
		fmt.Sprintf("%s security (%s)", sec.Level, tier.Name),
		"service", 1, sec.MonthlyCost, notes)
}

func (e *Engine) promptTuningCosts(tier *catalog.ServiceTier) (float64, []models.CostBreakdown) {
	pt := tier.PromptTuning
	return flatDimension("Prompt Tuning",
		fmt.Sprintf("%s (%s)", strings.ReplaceAll(pt.Approach, "_", " "), tier.Name),
		"service", 1, pt.MonthlyCost,
		fmt.Sprintf("Features: %s", strings.Join(pt.Features, ", ")))
}
