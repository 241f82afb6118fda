package engine

import (
	"fmt"
	"math"

	"github.com/agentfleet/costpilot/pkg/models"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// savings reports the estimated monthly savings already baked into the
// totals: the LLM spend avoided by prompt caching and the infrastructure
// spend avoided by reserved pricing. Both are informational figures and
// are not subtracted again from the totals.
func savings(req *models.CostRequest, llmTotal, infraTotal float64) (cache, reserved float64) {
	if req.CachingEnabled() {
		cache = llmTotal * (1 - req.CacheHitRate)
	}
	if req.ReservedEnabled() {
		reserved = infraTotal * 0.5
	}
	return cache, reserved
}

// usageMetrics derives the per-user and per-query efficiency figures.
// Every division is zero-guarded: a request with no users or no queries
// yields zero metrics rather than an error.
func (e *Engine) usageMetrics(req *models.CostRequest, infra sizedInfra, totalQueries int64, totalMonthly float64) models.GlobalUsageMetrics {
	tokensPerQuery := req.AvgInputTokens + req.AvgOutputTokens
	tokensPerUser := int64(tokensPerQuery) * int64(req.QueriesPerUserPerMonth)
	totalTokens := tokensPerUser * int64(req.NumUsers)
	totalStorageGB := (infra.StorageHotTB + infra.StorageCoolTB) * 1024

	var storagePerUser, costPerUser, costPerQuery, costPer1K float64
	if req.NumUsers > 0 {
		storagePerUser = totalStorageGB / float64(req.NumUsers)
		costPerUser = totalMonthly / float64(req.NumUsers)
	}
	if totalQueries > 0 {
		costPerQuery = totalMonthly / float64(totalQueries)
	}
	if totalTokens > 0 {
		costPer1K = totalMonthly / float64(totalTokens) * 1000
	}

	return models.GlobalUsageMetrics{
		TokensPerUserPerMonth:       tokensPerUser,
		InputTokensPerUserPerMonth:  int64(req.AvgInputTokens) * int64(req.QueriesPerUserPerMonth),
		OutputTokensPerUserPerMonth: int64(req.AvgOutputTokens) * int64(req.QueriesPerUserPerMonth),
		QueriesPerUserPerMonth:      req.QueriesPerUserPerMonth,
		StoragePerUserGB:            round2(storagePerUser),
		CostPerUserPerMonth:         round2(costPerUser),

		TotalUsers:           req.NumUsers,
		TotalTokensPerMonth:  totalTokens,
		TotalStorageGB:       round2(totalStorageGB),
		TotalQueriesPerMonth: totalQueries,

		CacheHitRate:      req.CacheHitRate,
		AvgTokensPerQuery: tokensPerQuery,
		CostPerQuery:      round4(costPerQuery),
		CostPer1KTokens:   round4(costPer1K),

		Description: fmt.Sprintf("Usage metrics for %d users with %d queries/user/month (%s tier)",
			req.NumUsers, req.QueriesPerUserPerMonth, req.ServiceTier),
	}
}
