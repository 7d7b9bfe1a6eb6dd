package model

import (
	"gorm.io/datatypes"
)

// ==================== 插件状态常量 ====================

const (
	PluginStatusPublished = "published" // 可安装
	PluginStatusDisabled  = "disabled"  // 全局下架
)

// ==================== Plugin 插件目录（全局） ====================

// Plugin 全局插件目录项
// manifest 描述插件提供的 hook 点与配置 schema，启动时从 PLUGIN_DIR 载入
type Plugin struct {
	BaseModel

	Slug     string         `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Name     string         `gorm:"size:100;not null" json:"name"`
	Version  string         `gorm:"size:20" json:"version"`
	Status   string         `gorm:"size:20;index;default:published" json:"status"`
	Manifest datatypes.JSON `gorm:"type:jsonb" json:"manifest"`
}

func (Plugin) TableName() string { return "plugins" }

// ==================== TenantPlugin 租户安装记录 ====================

// TenantPlugin 租户-插件多对多安装记录
// Position 决定 hook 调用顺序（按安装顺序递增）
type TenantPlugin struct {
	BaseModel

	TenantID int64 `gorm:"not null;uniqueIndex:idx_tenant_plugins_pair" json:"tenant_id"`
	PluginID int64 `gorm:"not null;uniqueIndex:idx_tenant_plugins_pair" json:"plugin_id"`

	Plugin *Plugin `gorm:"foreignKey:PluginID" json:"plugin,omitempty"`

	Config   datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	Enabled  bool              `gorm:"index" json:"enabled"`
	Position int               `gorm:"not null;default:0" json:"position"`
}

func (TenantPlugin) TableName() string { return "tenant_plugins" }

// AllModels 全部需要迁移的模型（建表顺序）
func AllModels() []interface{} {
	return []interface{}{
		&User{}, &Tenant{},
		&ProductType{}, &Product{}, &ProductAttribute{},
		&Order{}, &OrderItem{},
		&Workflow{}, &DeliveryMethod{}, &PaymentGateway{}, &Integration{},
		&Plugin{}, &TenantPlugin{},
	}
}
