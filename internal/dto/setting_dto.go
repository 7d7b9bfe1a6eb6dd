package dto

// ==================== 租户配置实体 DTO ====================
// 工作流 / 配送方式 / 支付网关 / 外部集成共用一套请求结构

// WorkflowCreateReq 创建工作流请求
type WorkflowCreateReq struct {
	Name     string                   `json:"name" binding:"required"`
	Steps    []map[string]interface{} `json:"steps"`
	Config   map[string]interface{}   `json:"config"`
	IsActive *bool                    `json:"is_active"`
}

// WorkflowUpdateReq 更新工作流请求
type WorkflowUpdateReq struct {
	Name     *string                  `json:"name"`
	Steps    []map[string]interface{} `json:"steps"`
	Config   map[string]interface{}   `json:"config"`
	IsActive *bool                    `json:"is_active"`
}

// DeliveryMethodCreateReq 创建配送方式请求
type DeliveryMethodCreateReq struct {
	Name     string                 `json:"name" binding:"required"`
	Config   map[string]interface{} `json:"config"`
	IsActive *bool                  `json:"is_active"`
}

// DeliveryMethodUpdateReq 更新配送方式请求
type DeliveryMethodUpdateReq struct {
	Name     *string                `json:"name"`
	Config   map[string]interface{} `json:"config"`
	IsActive *bool                  `json:"is_active"`
}

// PaymentGatewayCreateReq 创建支付网关请求
type PaymentGatewayCreateReq struct {
	Name        string                 `json:"name" binding:"required"`
	Provider    string                 `json:"provider" binding:"required"`
	Credentials map[string]interface{} `json:"credentials"`
	Config      map[string]interface{} `json:"config"`
	IsActive    *bool                  `json:"is_active"`
}

// PaymentGatewayUpdateReq 更新支付网关请求
type PaymentGatewayUpdateReq struct {
	Name        *string                `json:"name"`
	Provider    *string                `json:"provider"`
	Credentials map[string]interface{} `json:"credentials"`
	Config      map[string]interface{} `json:"config"`
	IsActive    *bool                  `json:"is_active"`
}

// IntegrationCreateReq 创建外部集成请求
type IntegrationCreateReq struct {
	Name        string                 `json:"name" binding:"required"`
	Provider    string                 `json:"provider" binding:"required"`
	Credentials map[string]interface{} `json:"credentials"`
	Config      map[string]interface{} `json:"config"`
	IsActive    *bool                  `json:"is_active"`
}

// IntegrationUpdateReq 更新外部集成请求
type IntegrationUpdateReq struct {
	Name        *string                `json:"name"`
	Provider    *string                `json:"provider"`
	Credentials map[string]interface{} `json:"credentials"`
	Config      map[string]interface{} `json:"config"`
	IsActive    *bool                  `json:"is_active"`
}

// ListReq 通用列表查询参数
type ListReq struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
