package dto

// ==================== 订单 DTO ====================

// OrderItemReq 下单明细行
type OrderItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// OrderCreateReq 创建订单请求
// 单价由服务端按商品当前价格快照，不信任客户端金额
type OrderCreateReq struct {
	UserID   *int64                 `json:"user_id"`
	Currency string                 `json:"currency"`
	Items    []OrderItemReq         `json:"items" binding:"required,min=1,dive"`
	Customer map[string]interface{} `json:"customer"`
	Metadata map[string]interface{} `json:"metadata"`
}

// OrderUpdateReq 更新订单请求
type OrderUpdateReq struct {
	Status   *string                `json:"status"`
	Customer map[string]interface{} `json:"customer"`
}

// OrderListReq 订单列表查询参数
type OrderListReq struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	UserID        int64  `form:"user_id"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

// ==================== 支付 DTO ====================

// PaymentReq 支付请求
type PaymentReq struct {
	Method   string                 `json:"method" binding:"required"`
	Customer map[string]interface{} `json:"customer"`
}

// PaymentResp 支付结果
type PaymentResp struct {
	OrderID       int64  `json:"order_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}
