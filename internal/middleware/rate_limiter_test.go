package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("第 %d 次请求应该放行", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("超出窗口上限后应该拒绝")
	}
	// 不同 IP 互不影响
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("其他 IP 不应受限")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	if !rl.Allow("1.2.3.4") {
		t.Fatalf("首次请求应该放行")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("窗口内第二次请求应该拒绝")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Fatalf("窗口过期后应该重新放行")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(10, 10*time.Millisecond)
	rl.Allow("1.2.3.4")
	rl.Allow("5.6.7.8")

	if n := rl.Sweep(); n != 0 {
		t.Fatalf("窗口未过期不应清理，实际清理 %d", n)
	}

	time.Sleep(20 * time.Millisecond)
	if n := rl.Sweep(); n != 2 {
		t.Fatalf("应清理 2 个过期窗口，实际 %d", n)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("第一次请求状态码错误: %d", code)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("第二次请求状态码错误: %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("超限请求应返回 429，实际 %d", code)
	}
}
