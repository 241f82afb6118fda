package engine

import (
	"fmt"

	"github.com/agentfleet/costpilot/pkg/models"
)

// toolCosts charges each selected add-on tool its flat monthly price.
// The assessment volume is reported via Quantity only and does not scale
// the charge. Unknown tool names are skipped without a line item.
func (e *Engine) toolCosts(selected []string, totalQueries int64) (float64, []models.CostBreakdown) {
	var total float64
	var items []models.CostBreakdown

	for _, name := range selected {
		price, ok := e.cat.ToolPrice(name)
		if !ok {
			continue
		}
		total += price
		items = append(items, models.CostBreakdown{
			Category:    "MCP Tools",
			Subcategory: name,
			MonthlyCost: price,
			AnnualCost:  price * 12,
			Unit:        "assessments",
			Quantity:    float64(totalQueries),
			Notes:       fmt.Sprintf("Flat charge at $%.2f per assessment", price),
		})
	}
	return total, items
}
