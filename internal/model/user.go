package model

import "time"

// ==================== 角色常量 ====================

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ==================== User 用户表 ====================

// User 平台用户
// APIKey 是长期有效的静态凭证，可替代 admin JWT（CLI / 自动化用）
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	APIKey       *string `gorm:"size:64;uniqueIndex" json:"-"`
	Role         string  `gorm:"size:20;index;default:user" json:"role"`
}

func (User) TableName() string { return "users" }

// IsAdmin admin 与 super_admin 均可通过管理端认证
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
