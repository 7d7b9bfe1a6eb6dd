package repository

import (
	"math"

	"gorm.io/gorm"
)

// ==================== 租户过滤 ====================

// TenantScope 租户隔离过滤
// 全系统唯一的 tenant_id 过滤出口：所有租户数据的读写必须经过这里，
// 禁止在单条查询里手写 tenant_id 条件（防止两处实现漂移导致跨租户泄漏）
func TenantScope(tenantID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ==================== 分页 ====================

// Page 分页结果
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPage 组装分页结果，pages = ceil(total/limit)
func NewPage[T any](data []T, total int64, page, limit int) *Page[T] {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	if data == nil {
		data = []T{}
	}
	return &Page[T]{Data: data, Total: total, Page: page, Limit: limit, Pages: pages}
}

// NormalizePage 页码参数兜底
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// Paginate 分页过滤
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset((page - 1) * limit)
	}
}
