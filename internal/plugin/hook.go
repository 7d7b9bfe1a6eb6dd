package plugin

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== Hook 点定义 ====================

// HookName 扩展点名称
type HookName string

const (
	HookBeforeOrderCreate    HookName = "before_order_create"
	HookAfterOrderCreate     HookName = "after_order_create"
	HookBeforePaymentProcess HookName = "before_payment_process"
	HookAfterPaymentSuccess  HookName = "after_payment_success"
	HookAfterPaymentFailed   HookName = "after_payment_failed"
)

// IsBefore before_* hook 的失败会中止外层操作；after_* 只记日志不回滚
func (h HookName) IsBefore() bool {
	return h == HookBeforeOrderCreate || h == HookBeforePaymentProcess
}

// ==================== Payload 定义 ====================

// Payload hook 载荷，按 hook 点区分的封闭联合类型
// handler 可以修改并返回载荷，dispatcher 把（可能被改写的）载荷传给下一个 handler
type Payload interface {
	payload()
}

// OrderPayload 订单类 hook 的载荷
type OrderPayload struct {
	OrderID     int64                  `json:"order_id,omitempty"`
	UserID      *int64                 `json:"user_id,omitempty"`
	Currency    string                 `json:"currency"`
	TotalAmount int64                  `json:"total_amount"`
	Items       []OrderItemInput       `json:"items"`
	Customer    map[string]interface{} `json:"customer"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// OrderItemInput 订单明细输入
type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// PaymentPayload 支付类 hook 的载荷
type PaymentPayload struct {
	OrderID        int64                  `json:"order_id"`
	Amount         int64                  `json:"amount"`
	Currency       string                 `json:"currency"`
	Method         string                 `json:"method"`
	Customer       map[string]interface{} `json:"customer"`
	IdempotencyKey string                 `json:"idempotency_key,omitempty"`
	GatewayMeta    map[string]interface{} `json:"gateway_meta,omitempty"`
	FailureReason  string                 `json:"failure_reason,omitempty"`
}

func (*OrderPayload) payload()   {}
func (*PaymentPayload) payload() {}

// ==================== Handler 定义 ====================

// HookContext handler 执行环境
// Config 是该租户安装记录上的配置；DB 已限定只应做租户内操作
type HookContext struct {
	TenantID int64
	Config   datatypes.JSONMap
	DB       *gorm.DB
	Logger   *zap.SugaredLogger
	Events   *EventBus
}

// HookFunc hook handler
// 返回的 Payload 会替代入参传递给后续 handler；返回 error 的语义见 HookName.IsBefore
type HookFunc func(ctx context.Context, hc *HookContext, p Payload) (Payload, error)

// Plugin 插件实现
// Slug 必须与目录表中的 slug 一致，Hooks 返回该插件提供的 hook 点
type Plugin interface {
	Slug() string
	Hooks() map[HookName]HookFunc
}
