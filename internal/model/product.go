package model

import (
	"gorm.io/datatypes"
)

// ==================== 商品状态常量 ====================

const (
	ProductStatusDraft    = "draft"    // 草稿，店面不可见
	ProductStatusActive   = "active"   // 在售
	ProductStatusArchived = "archived" // 已下架
)

// ==================== ProductType 商品类型 ====================

// ProductType 租户自定义的商品类目模板
// slug 在租户内唯一（复合唯一索引），schema/ui_config/validation 为 JSON 定义
type ProductType struct {
	BaseModel

	// 不内嵌 TenantOwned：tenant_id 参与复合唯一索引
	TenantID int64 `gorm:"not null;uniqueIndex:idx_product_types_tenant_slug" json:"tenant_id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:64;not null;uniqueIndex:idx_product_types_tenant_slug" json:"slug"`

	Schema     datatypes.JSON    `gorm:"type:jsonb" json:"schema"`
	UIConfig   datatypes.JSONMap `gorm:"type:jsonb" json:"ui_config"`
	Validation datatypes.JSONMap `gorm:"type:jsonb" json:"validation"`
}

func (ProductType) TableName() string { return "product_types" }

// ==================== Product 商品 ====================

// Product 商品，归属一个租户和一个商品类型
type Product struct {
	BaseModel
	TenantOwned

	ProductTypeID int64        `gorm:"index;not null" json:"product_type_id"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:128;index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// 金额以分为单位存储
	PriceAmount int64  `gorm:"not null;default:0" json:"price_amount"`
	Currency    string `gorm:"size:10;default:USD" json:"currency"`

	Status   string            `gorm:"size:20;index;default:draft" json:"status"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	Images   datatypes.JSON    `gorm:"type:jsonb" json:"images"`

	Attributes []ProductAttribute `gorm:"foreignKey:ProductID" json:"attributes,omitempty"`
}

func (Product) TableName() string { return "products" }

// ==================== ProductAttribute 商品属性 ====================

// ProductAttribute 开放的 key/value/type 三元组
type ProductAttribute struct {
	BaseModel

	ProductID int64  `gorm:"index;not null" json:"product_id"`
	Key       string `gorm:"size:64;not null" json:"key"`
	Value     string `gorm:"type:text" json:"value"`
	ValueType string `gorm:"size:20;default:string" json:"value_type"` // string | number | boolean | json
}

func (ProductAttribute) TableName() string { return "product_attributes" }
