package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 租户状态常量 ====================

const (
	TenantStatusActive    = "active"    // 正常
	TenantStatusSuspended = "suspended" // 已停用，解析时视为不存在
	TenantStatusDeleted   = "deleted"   // 已删除
)

// 套餐常量
const (
	TenantPlanFree       = "free"
	TenantPlanPro        = "pro"
	TenantPlanEnterprise = "enterprise"
)

// ==================== Tenant 租户主表 ====================

// Tenant 租户，数据隔离的最小单位
// slug / domain / subdomain 全局唯一；删除为硬删除并级联清理所属数据
type Tenant struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:64;uniqueIndex;not null" json:"slug"`

	// 自定义域名解析：先精确匹配 domain，再取 host 首段匹配 subdomain
	Domain    *string `gorm:"size:255;uniqueIndex" json:"domain,omitempty"`
	Subdomain *string `gorm:"size:64;uniqueIndex" json:"subdomain,omitempty"`

	Status string `gorm:"size:20;index;default:active" json:"status"`
	Plan   string `gorm:"size:20;default:free" json:"plan"`

	Settings datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`
	Branding datatypes.JSONMap `gorm:"type:jsonb" json:"branding"`
}

func (Tenant) TableName() string { return "tenants" }

// IsActive 仅 active 租户可被解析（挂起/删除视为不存在，fail closed）
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
