package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/plugin"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 订单服务 ====================

type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher *plugin.Dispatcher
	logger     *zap.SugaredLogger
}

// NewOrderService 工厂方法
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, dispatcher *plugin.Dispatcher, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orders:     orders,
		products:   products,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create 创建订单
// 流程：按当前商品价格生成快照 -> before_order_create 插件链（可改载荷或中止）
// -> 事务落库 -> after_order_create（失败只记日志）
func (s *OrderService) Create(ctx context.Context, tenantID int64, req dto.OrderCreateReq) (*model.Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	// 1. 逐行校验商品并快照单价；价格以服务端为准
	var subtotal int64
	payloadItems := make([]plugin.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := s.products.GetByID(ctx, tenantID, item.ProductID)
		if err != nil {
			if errs.IsNotFound(err) {
				return nil, errs.Validation(fmt.Sprintf("商品 %d 不存在", item.ProductID))
			}
			return nil, err
		}
		if product.Status == model.ProductStatusArchived {
			return nil, errs.Validation(fmt.Sprintf("商品 %s 已下架", product.Title))
		}
		subtotal += product.PriceAmount * int64(item.Quantity)
		payloadItems = append(payloadItems, plugin.OrderItemInput{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.PriceAmount,
		})
	}

	// 2. before hook：插件可调整金额（折扣类）或拒绝下单
	payload := &plugin.OrderPayload{
		UserID:      req.UserID,
		Currency:    currency,
		TotalAmount: subtotal,
		Items:       payloadItems,
		Customer:    req.Customer,
		Metadata:    req.Metadata,
	}
	out, err := s.dispatcher.Dispatch(ctx, tenantID, plugin.HookBeforeOrderCreate, payload)
	if err != nil {
		return nil, err
	}
	payload, ok := out.(*plugin.OrderPayload)
	if !ok {
		return nil, errs.Internal(fmt.Errorf("插件返回了错误的载荷类型 %T", out))
	}

	// 3. 组装落库数据
	itemsJSON, err := marshalJSON(payload.Items)
	if err != nil {
		return nil, err
	}
	orderItems := make([]model.OrderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Currency:  payload.Currency,
		})
	}

	order := &model.Order{
		TenantOwned:    model.TenantOwned{TenantID: tenantID},
		UserID:         payload.UserID,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		SubtotalAmount: subtotal,
		TotalAmount:    payload.TotalAmount,
		Currency:       payload.Currency,
		Items:          itemsJSON,
		Customer:       datatypes.JSONMap(payload.Customer),
	}
	if payload.TotalAmount != subtotal {
		// 插件改过总价，记录调价明细
		order.Pricing = datatypes.JSONMap{
			"subtotal": subtotal,
			"total":    payload.TotalAmount,
			"adjusted": true,
		}
	}

	if err := s.orders.CreateWithItems(ctx, order, orderItems); err != nil {
		return nil, err
	}

	// 4. after hook：失败不回滚订单
	payload.OrderID = order.ID
	if _, err := s.dispatcher.Dispatch(ctx, tenantID, plugin.HookAfterOrderCreate, payload); err != nil {
		s.logger.Errorw("after_order_create 插件链失败", "tenant_id", tenantID, "order_id", order.ID, "error", err)
	}

	return order, nil
}

// Get 按 ID 获取订单（含明细）
func (s *OrderService) Get(ctx context.Context, tenantID, id int64) (*model.Order, error) {
	return s.orders.GetByID(ctx, tenantID, id)
}

// List 分页查询订单
func (s *OrderService) List(ctx context.Context, tenantID int64, req dto.OrderListReq) (*repository.Page[model.Order], error) {
	return s.orders.List(ctx, tenantID, repository.OrderFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		UserID:        req.UserID,
		Page:          req.Page,
		Limit:         req.Limit,
	})
}

// Update 部分更新订单；已支付订单不允许取消
func (s *OrderService) Update(ctx context.Context, tenantID, id int64, req dto.OrderUpdateReq) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		switch *req.Status {
		case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusCancelled:
		default:
			return nil, errs.Validation("无效的订单状态")
		}
		if *req.Status == model.OrderStatusCancelled && order.PaymentStatus == model.PaymentStatusPaid {
			return nil, errs.Conflict("已支付订单不能取消")
		}
		fields["status"] = *req.Status
	}
	if req.Customer != nil {
		fields["customer"] = datatypes.JSONMap(req.Customer)
	}
	if len(fields) == 0 {
		return order, nil
	}

	if err := s.orders.UpdateFields(ctx, tenantID, id, fields); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, tenantID, id)
}

// Delete 删除订单
func (s *OrderService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.orders.Delete(ctx, tenantID, id)
}
