package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/utils"
)

// ==================== 租户解析中间件 ====================

const (
	ContextKeyTenant   = "tenant"
	ContextKeyTenantID = "tenant_id"

	// 解析结果缓存时长；停用/删除走服务层主动失效，TTL 只兜底
	tenantCacheTTL = time.Minute
)

// TenantCacheKey 租户解析缓存键，服务层更新/删除租户时用它失效
func TenantCacheKey(slug string) string {
	return "tenant:slug:" + slug
}

func abortTenantNotFound(c *gin.Context) {
	// 解析失败一律 404，不区分"不存在"和"已停用"，避免探测
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"success":    false,
		"error":      "租户不存在",
		"statusCode": http.StatusNotFound,
	})
}

// ResolveTenant 按路径参数 :tenant_slug 解析租户
// 只接受 active 状态的租户，解析结果写入 Context 供后续 handler 使用；
// 命中缓存时不查库，租户更新/删除时由服务层按 TenantCacheKey 失效
func ResolveTenant(tenants repository.TenantRepository, cache *utils.TTLCache, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("tenant_slug")
		if slug == "" {
			abortTenantNotFound(c)
			return
		}

		if v, ok := cache.Get(TenantCacheKey(slug)); ok {
			tenant := v.(*model.Tenant)
			c.Set(ContextKeyTenant, tenant)
			c.Set(ContextKeyTenantID, tenant.ID)
			c.Next()
			return
		}

		tenant, err := tenants.GetActiveBySlug(c.Request.Context(), slug)
		if err != nil {
			logger.Debugw("租户解析失败", "slug", slug, "error", err)
			abortTenantNotFound(c)
			return
		}

		cache.Set(TenantCacheKey(slug), tenant, tenantCacheTTL)
		c.Set(ContextKeyTenant, tenant)
		c.Set(ContextKeyTenantID, tenant.ID)
		c.Next()
	}
}

// ResolveTenantByHost 按请求 Host 解析租户（自定义域名或子域名）
func ResolveTenantByHost(tenants repository.TenantRepository, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		if host == "" {
			abortTenantNotFound(c)
			return
		}

		tenant, err := tenants.GetActiveByHost(c.Request.Context(), host)
		if err != nil {
			logger.Debugw("域名租户解析失败", "host", host, "error", err)
			abortTenantNotFound(c)
			return
		}

		c.Set(ContextKeyTenant, tenant)
		c.Set(ContextKeyTenantID, tenant.ID)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetTenant 从 Context 获取当前租户
func GetTenant(c *gin.Context) *model.Tenant {
	if v, exists := c.Get(ContextKeyTenant); exists {
		return v.(*model.Tenant)
	}
	return nil
}

// GetTenantID 从 Context 获取当前租户 ID（未解析时为 0）
func GetTenantID(c *gin.Context) int64 {
	if v, exists := c.Get(ContextKeyTenantID); exists {
		return v.(int64)
	}
	return 0
}
