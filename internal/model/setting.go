package model

import (
	"gorm.io/datatypes"
)

// 四个租户配置实体结构一致：名称 + JSON 配置 + 启用开关
// 彼此无关联，仅按租户归属隔离；repository 层用泛型共享同一套 CRUD

// ==================== Workflow 工作流 ====================

// Workflow 订单处理工作流配置
type Workflow struct {
	BaseModel
	TenantOwned

	Name     string            `gorm:"size:100;not null" json:"name"`
	Steps    datatypes.JSON    `gorm:"type:jsonb" json:"steps"`
	Config   datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive bool              `gorm:"index" json:"is_active"`
}

func (Workflow) TableName() string { return "workflows" }

// ==================== DeliveryMethod 配送方式 ====================

// DeliveryMethod 配送方式配置
type DeliveryMethod struct {
	BaseModel
	TenantOwned

	Name     string            `gorm:"size:100;not null" json:"name"`
	Config   datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive bool              `gorm:"index" json:"is_active"`
}

func (DeliveryMethod) TableName() string { return "delivery_methods" }

// ==================== PaymentGateway 支付网关 ====================

// PaymentGateway 支付网关配置
// Credentials 存密钥等敏感配置，列表接口不返回
type PaymentGateway struct {
	BaseModel
	TenantOwned

	Name        string            `gorm:"size:100;not null" json:"name"`
	Provider    string            `gorm:"size:64" json:"provider"`
	Credentials datatypes.JSONMap `gorm:"type:jsonb" json:"-"`
	Config      datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive    bool              `gorm:"index" json:"is_active"`
}

func (PaymentGateway) TableName() string { return "payment_gateways" }

// ==================== Integration 第三方集成 ====================

// Integration 第三方集成配置
type Integration struct {
	BaseModel
	TenantOwned

	Name        string            `gorm:"size:100;not null" json:"name"`
	Provider    string            `gorm:"size:64" json:"provider"`
	Credentials datatypes.JSONMap `gorm:"type:jsonb" json:"-"`
	Config      datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive    bool              `gorm:"index" json:"is_active"`
}

func (Integration) TableName() string { return "integrations" }
