package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientInfo tracks one client's request window.
type ClientInfo struct {
	RequestCount int
	WindowStart  time.Time
	LastRequest  time.Time
}

// RateLimiter implements fixed-window rate limiting keyed by client IP.
type RateLimiter struct {
	clients    map[string]*ClientInfo
	mutex      sync.RWMutex
	maxReqs    int
	window     time.Duration
	cleanupInt time.Duration
}

func NewRateLimiter(maxReqs int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:    make(map[string]*ClientInfo),
		maxReqs:    maxReqs,
		window:     window,
		cleanupInt: window * 2,
	}
	go rl.cleanup()
	return rl
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allowRequest(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Try again in a few minutes.",
				"code":    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allowRequest(clientIP string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &ClientInfo{
			RequestCount: 1,
			WindowStart:  now,
			LastRequest:  now,
		}
		return true
	}

	if now.Sub(client.WindowStart) > rl.window {
		client.RequestCount = 1
		client.WindowStart = now
		client.LastRequest = now
		return true
	}

	client.LastRequest = now
	if client.RequestCount >= rl.maxReqs {
		return false
	}
	client.RequestCount++
	return true
}

// cleanup evicts clients idle for more than two windows.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInt)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		now := time.Now()
		for ip, client := range rl.clients {
			if now.Sub(client.LastRequest) > rl.cleanupInt {
				delete(rl.clients, ip)
			}
		}
		rl.mutex.Unlock()
	}
}

// GetStats reports rate limiter state for diagnostics.
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	return map[string]interface{}{
		"active_clients": len(rl.clients),
		"max_requests":   rl.maxReqs,
		"window_minutes": rl.window.Minutes(),
	}
}
