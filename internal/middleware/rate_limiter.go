package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 限流中间件 ====================

// ipWindow 单个 IP 的固定窗口计数
type ipWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter 按 IP 固定窗口限流器
// 内存实现，进程重启即重置；窗口内超额返回 429
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*ipWindow
	max     int
	window  time.Duration
}

// NewRateLimiter 创建限流器，max 为每个窗口允许的请求数
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*ipWindow),
		max:     max,
		window:  window,
	}
}

// Allow 判断给定 key（通常是客户端 IP）是否放行
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w, ok := r.windows[key]
	if !ok || now.After(w.resetAt) {
		r.windows[key] = &ipWindow{count: 1, resetAt: now.Add(r.window)}
		return true
	}
	if w.count >= r.max {
		return false
	}
	w.count++
	return true
}

// Sweep 清理已过期的窗口，返回清理数量，由定时任务调用
func (r *RateLimiter) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, w := range r.windows {
		if now.After(w.resetAt) {
			delete(r.windows, key)
			removed++
		}
	}
	return removed
}

// Middleware 返回 gin 中间件，超额返回 429
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"error":      "请求过于频繁，请稍后再试",
				"statusCode": http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
