package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用字段
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TenantOwned 租户归属字段
// 所有租户数据表必须内嵌，读写路径必须经过 repository.TenantScope 过滤
type TenantOwned struct {
	TenantID int64 `gorm:"index;not null" json:"tenant_id"`
}
