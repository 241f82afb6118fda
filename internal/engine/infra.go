package engine

import (
	"fmt"

	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/pkg/models"
)

// sizedInfra is a tier's infrastructure footprint after the request's
// scale multiplier has been applied. Storage moves from GB to TB here.
// GPU nodes are always zero: GPU spend is billed through the LLM
// dimension's on-premise path, never as managed infrastructure.
type sizedInfra struct {
	AKSNodes      float64
	GPUNodes      float64
	SQLVCores     float64
	CosmosRU      float64
	Neo4jNodes    float64
	StorageHotTB  float64
	StorageCoolTB float64
}

func (e *Engine) sizedInfrastructure(tier *catalog.ServiceTier, scale float64) sizedInfra {
	base := tier.Infrastructure
	return sizedInfra{
		AKSNodes:      float64(base.AKSNodes) * scale,
		GPUNodes:      0,
		SQLVCores:     float64(base.SQLVCores) * scale,
		CosmosRU:      float64(base.CosmosRU) * scale,
		Neo4jNodes:    float64(base.Neo4jNodes) * scale,
		StorageHotTB:  base.StorageHotGB / 1024.0 * scale,
		StorageCoolTB: base.StorageCoolGB / 1024.0 * scale,
	}
}

// infrastructureCosts prices the managed compute, database, and storage
// footprint at regional AUD rates. Reserved pricing applies to compute
// nodes only.
func (e *Engine) infrastructureCosts(infra sizedInfra, useReserved bool) (float64, []models.CostBreakdown) {
	rates := e.cat.Rates

	var total float64
	var items []models.CostBreakdown
	add := func(item models.CostBreakdown) {
		total += item.MonthlyCost
		item.AnnualCost = item.MonthlyCost * 12
		items = append(items, item)
	}

	nodeRate := rates.ComputeNode.PayGo
	pricingNote := "pay-as-you-go"
	if useReserved {
		nodeRate = rates.ComputeNode.Reserved1Yr
		pricingNote = "1-year reserved"
	}
	add(models.CostBreakdown{
		Category:    "Infrastructure",
		Subcategory: "AKS Compute Nodes",
		MonthlyCost: nodeRate * infra.AKSNodes * hoursPerMonth,
		Unit:        "nodes",
		Quantity:    infra.AKSNodes,
		Notes:       fmt.Sprintf("%s, %s pricing", rates.ComputeNode.SKU, pricingNote),
	})

	if infra.GPUNodes > 0 {
		gpuRate := rates.GPUNode.PayGo
		if useReserved {
			gpuRate = rates.GPUNode.Reserved1Yr
		}
		add(models.CostBreakdown{
			Category:    "Infrastructure",
			Subcategory: "GPU Nodes",
			MonthlyCost: gpuRate * infra.GPUNodes * hoursPerMonth,
			Unit:        "nodes",
			Quantity:    infra.GPUNodes,
			Notes:       fmt.Sprintf("%s, %s pricing", rates.GPUNode.SKU, pricingNote),
		})
	}

	add(models.CostBreakdown{
		Category:    "Infrastructure",
		Subcategory: "Azure SQL Database",
		MonthlyCost: rates.SQLPerVCoreHour * infra.SQLVCores * hoursPerMonth,
		Unit:        "vCores",
		Quantity:    infra.SQLVCores,
		Notes:       fmt.Sprintf("General Purpose, %.1f vCores", infra.SQLVCores),
	})

	hotGB := infra.StorageHotTB * 1024
	coolGB := infra.StorageCoolTB * 1024
	add(models.CostBreakdown{
		Category:    "Infrastructure",
		Subcategory: "Blob Storage",
		MonthlyCost: rates.StorageHotGBMonth*hotGB + rates.StorageCoolGBMonth*coolGB,
		Unit:        "TB",
		Quantity:    infra.StorageHotTB + infra.StorageCoolTB,
		Notes:       fmt.Sprintf("%.2fTB hot + %.2fTB cool", infra.StorageHotTB, infra.StorageCoolTB),
	})

	return total, items
}
