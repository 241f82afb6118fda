// Package middleware provides Gin middleware for the CostPilot service:
// request IDs, request logging, rate limiting, and panic recovery.
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agentfleet/costpilot/pkg/cache"
)

// RequestIDMiddleware attaches a request id to every request. An inbound
// X-Request-ID header is honored so upstream traces carry through.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// LoggingMiddleware returns a Gin middleware handler that logs request and
// response metadata including method, path, status code, latency, and client IP.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		bodySize := c.Writer.Size()

		if query != "" {
			path = path + "?" + query
		}

		// Determine log level based on status code
		switch {
		case statusCode >= 500:
			log.Printf("[ERROR] %s %s | %d | %v | %s | %d bytes | errors: %s",
				method, path, statusCode, latency, clientIP, bodySize, c.Errors.ByType(gin.ErrorTypePrivate).String())
		case statusCode >= 400:
			log.Printf("[WARN]  %s %s | %d | %v | %s | %d bytes",
				method, path, statusCode, latency, clientIP, bodySize)
		default:
			log.Printf("[INFO]  %s %s | %d | %v | %s | %d bytes",
				method, path, statusCode, latency, clientIP, bodySize)
		}
	}
}

// RateLimitMiddleware returns a Gin middleware handler that enforces
// per-client-IP rate limiting using Redis. It allows maxRequests within
// the specified window. A nil cache disables rate limiting entirely.
func RateLimitMiddleware(c *cache.Cache, maxRequests int64, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil {
			ctx.Next()
			return
		}

		allowed, err := c.RateLimitCheck(ctx.Request.Context(), ctx.ClientIP(), maxRequests, window)
		if err != nil {
			// On Redis error, allow the request but log the issue
			log.Printf("middleware: rate limit check error: %v", err)
			ctx.Next()
			return
		}

		if !allowed {
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please slow down.",
			})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// RecoveryMiddleware returns a Gin middleware that recovers from panics
// and returns a 500 error instead of crashing the server.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC] recovered from panic: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "internal_server_error",
					"message": "An unexpected error occurred.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
