package dto

// ==================== 认证相关 DTO ====================

// LoginReq 登录请求（管理端与租户端共用）
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResp 登录响应
type LoginResp struct {
	Token string   `json:"token"`
	User  UserResp `json:"user"`
}

// UserResp 用户信息（不含密码散列）
type UserResp struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// APIKeyResp 新签发的 API Key，仅在签发时返回一次
type APIKeyResp struct {
	APIKey string `json:"api_key"`
}
