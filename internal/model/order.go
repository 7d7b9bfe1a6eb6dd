package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

const (
	OrderStatusPending   = "pending"   // 待处理
	OrderStatusConfirmed = "confirmed" // 已确认（支付成功）
	OrderStatusCancelled = "cancelled" // 已取消
)

// 支付状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// ==================== Order 订单主表 ====================

// Order 订单
// items/pricing/payment/customer 为 JSON 快照；金额以分为单位
type Order struct {
	BaseModel
	TenantOwned

	// 下单用户（店面可匿名下单）
	UserID *int64 `gorm:"index" json:"user_id,omitempty"`

	Status        string `gorm:"size:20;index;default:pending" json:"status"`
	PaymentStatus string `gorm:"size:20;index;default:pending" json:"payment_status"`

	SubtotalAmount int64  `gorm:"not null;default:0" json:"subtotal_amount"`
	TotalAmount    int64  `gorm:"not null;default:0" json:"total_amount"`
	Currency       string `gorm:"size:10;default:USD" json:"currency"`

	Items    datatypes.JSON    `gorm:"type:jsonb" json:"items"`
	Pricing  datatypes.JSONMap `gorm:"type:jsonb" json:"pricing"`
	Payment  datatypes.JSONMap `gorm:"type:jsonb" json:"payment"`
	Customer datatypes.JSONMap `gorm:"type:jsonb" json:"customer"`

	PaidAt *time.Time `json:"paid_at,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// ==================== OrderItem 订单明细 ====================

// OrderItem 明细行
// UnitPrice 是下单时刻的价格快照，之后商品调价不回写（历史价格不可变）
type OrderItem struct {
	BaseModel

	OrderID   int64 `gorm:"index;not null" json:"order_id"`
	ProductID int64 `gorm:"index;not null" json:"product_id"`

	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"`
	Currency  string `gorm:"size:10;default:USD" json:"currency"`
}

func (OrderItem) TableName() string { return "order_items" }
