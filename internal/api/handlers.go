// Package api implements the REST API endpoints for the CostPilot service.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agentfleet/costpilot/internal/engine"
	"github.com/agentfleet/costpilot/pkg/cache"
	"github.com/agentfleet/costpilot/pkg/models"
)

// Handlers provides REST API endpoint handlers.
type Handlers struct {
	engine   *engine.Engine
	cache    *cache.Cache // nil when Redis is unavailable
	cacheTTL time.Duration
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine, c *cache.Cache, cacheTTL time.Duration) *Handlers {
	return &Handlers{engine: eng, cache: c, cacheTTL: cacheTTL}
}

// HealthCheck returns the service health status.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "costpilot",
		"version": "0.1.0",
	})
}

// estimateCacheKey derives a cache key from the defaulted request so
// identical requests hit the same entry.
func estimateCacheKey(req *models.CostRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return "estimate:" + hex.EncodeToString(sum[:])[:16]
}

// CalculateCosts produces the full itemized estimate for a deployment.
// An empty request body is valid and estimates the documented defaults.
func (h *Handlers) CalculateCosts(c *gin.Context) {
	var req models.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ApplyDefaults()

	cacheKey := estimateCacheKey(&req)
	if h.cache != nil && cacheKey != "" {
		if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	result, err := h.engine.Compute(&req)
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedAgent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil && cacheKey != "" {
		if payload, err := json.Marshal(result); err == nil {
			if err := h.cache.Set(c.Request.Context(), cacheKey, string(payload), h.cacheTTL); err != nil {
				log.Printf("api: estimate cache write failed: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

// CalculateAgentCost estimates the LLM cost of a single model in isolation.
func (h *Handlers) CalculateAgentCost(c *gin.Context) {
	var req models.AgentCostRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LLMModel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "llm_model is required"})
		return
	}
	req.ApplyDefaults()

	c.JSON(http.StatusOK, h.engine.SingleModelCost(&req))
}

// ListAgents returns the supported agent workload types.
func (h *Handlers) ListAgents(c *gin.Context) {
	cat := h.engine.Catalog()
	agents := make([]gin.H, 0, len(cat.AgentIDs()))
	for _, id := range cat.AgentIDs() {
		agent, _ := cat.Agent(id)
		agents = append(agents, gin.H{
			"id":          agent.ID,
			"name":        agent.Name,
			"description": agent.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "data": agents})
}

// GetAgent returns the full profile of one agent workload type.
func (h *Handlers) GetAgent(c *gin.Context) {
	agent, ok := h.engine.Catalog().Agent(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent type not found"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

// ListTiers returns every service tier definition.
func (h *Handlers) ListTiers(c *gin.Context) {
	cat := h.engine.Catalog()
	tiers := make([]gin.H, 0, len(cat.TierLevels()))
	for _, level := range cat.TierLevels() {
		tier := cat.Tier(string(level))
		tiers = append(tiers, gin.H{
			"id":                    tier.ID,
			"name":                  tier.Name,
			"description":           tier.Description,
			"target_price_per_user": tier.TargetPricePerUserMonthly,
			"deployment_type":       tier.DeploymentType,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tiers), "data": tiers})
}

// GetTier returns one tier's full definition. Unlike the estimation path,
// catalog detail lookups are strict: unknown ids are a 404, not a fallback.
func (h *Handlers) GetTier(c *gin.Context) {
	cat := h.engine.Catalog()
	id := c.Param("id")
	if !cat.HasTier(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}
	c.JSON(http.StatusOK, cat.Tier(id))
}

// GetTierModels lists the models a tier may use for a deployment mode.
// Query param: deployment (cloud_api|on_premise), default cloud_api.
func (h *Handlers) GetTierModels(c *gin.Context) {
	cat := h.engine.Catalog()
	id := c.Param("id")
	if !cat.HasTier(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}

	dep := models.ParseDeployment(c.DefaultQuery("deployment", string(models.DeploymentCloudAPI)))
	details := cat.ModelsForTier(id, dep)
	c.JSON(http.StatusOK, gin.H{
		"tier":       strings.ToLower(id),
		"deployment": dep,
		"count":      len(details),
		"data":       details,
	})
}

// GetTierSummary returns a tier's fixed-cost summary.
func (h *Handlers) GetTierSummary(c *gin.Context) {
	cat := h.engine.Catalog()
	id := c.Param("id")
	if !cat.HasTier(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}
	c.JSON(http.StatusOK, cat.Summary(id))
}

// GetTierOnPremise estimates the monthly cost of on-premise GPU capacity
// for a tier. Query params: gpu (T4|A100|H100, default A100), count.
func (h *Handlers) GetTierOnPremise(c *gin.Context) {
	cat := h.engine.Catalog()
	id := c.Param("id")
	if !cat.HasTier(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}

	gpu := models.GPUClass(strings.ToUpper(c.DefaultQuery("gpu", string(models.GPUA100))))
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil || count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}

	monthly, ok := cat.OnPremiseMonthlyCost(gpu, id, count)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown GPU class, expected T4, A100, or H100"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":         strings.ToLower(id),
		"gpu":          gpu,
		"count":        count,
		"monthly_cost": monthly,
		"annual_cost":  monthly * 12,
	})
}
