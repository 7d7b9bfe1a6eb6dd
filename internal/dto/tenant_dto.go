package dto

// ==================== 租户相关 DTO ====================

// TenantCreateReq 创建租户请求
type TenantCreateReq struct {
	Name      string                 `json:"name" binding:"required"`
	Slug      string                 `json:"slug" binding:"required"`
	Domain    *string                `json:"domain"`
	Subdomain *string                `json:"subdomain"`
	Plan      string                 `json:"plan"`
	Settings  map[string]interface{} `json:"settings"`
	Branding  map[string]interface{} `json:"branding"`
}

// TenantUpdateReq 更新租户请求，指针字段表示"未提供则不更新"
type TenantUpdateReq struct {
	Name      *string                `json:"name"`
	Domain    *string                `json:"domain"`
	Subdomain *string                `json:"subdomain"`
	Status    *string                `json:"status"`
	Plan      *string                `json:"plan"`
	Settings  map[string]interface{} `json:"settings"`
	Branding  map[string]interface{} `json:"branding"`
}

// TenantListReq 租户列表查询参数
type TenantListReq struct {
	Status  string `form:"status"`
	Plan    string `form:"plan"`
	Keyword string `form:"keyword"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}
