package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/plugin"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 支付服务 ====================

type PaymentService struct {
	orders     repository.OrderRepository
	gateways   repository.SettingRepository[model.PaymentGateway]
	dispatcher *plugin.Dispatcher
	logger     *zap.SugaredLogger
}

// NewPaymentService 工厂方法
func NewPaymentService(orders repository.OrderRepository, gateways repository.SettingRepository[model.PaymentGateway], dispatcher *plugin.Dispatcher, logger *zap.SugaredLogger) *PaymentService {
	return &PaymentService{
		orders:     orders,
		gateways:   gateways,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ProcessPayment 处理订单支付
// 流程：加载订单 -> before_payment_process 插件链（校验/注入网关元数据，可中止）
// -> 网关扣款 -> 落库 -> after_payment_success / after_payment_failed
func (s *PaymentService) ProcessPayment(ctx context.Context, tenantID, orderID int64, req dto.PaymentReq) (*dto.PaymentResp, error) {
	// 1. 加载并校验订单状态
	order, err := s.orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		return nil, errs.Conflict("订单已支付")
	}
	if order.Status == model.OrderStatusCancelled {
		return nil, errs.Conflict("订单已取消，无法支付")
	}

	// 2. before hook
	payload := &plugin.PaymentPayload{
		OrderID:  order.ID,
		Amount:   order.TotalAmount,
		Currency: order.Currency,
		Method:   req.Method,
		Customer: req.Customer,
	}
	out, err := s.dispatcher.Dispatch(ctx, tenantID, plugin.HookBeforePaymentProcess, payload)
	if err != nil {
		return nil, err
	}
	payload, ok := out.(*plugin.PaymentPayload)
	if !ok {
		return nil, errs.Internal(fmt.Errorf("插件返回了错误的载荷类型 %T", out))
	}

	// 3. 调网关扣款
	txnID, chargeErr := s.charge(ctx, tenantID, payload)

	// 4. 按结果落库并触发 after hook
	if chargeErr != nil {
		payload.FailureReason = chargeErr.Error()
		fields := map[string]interface{}{
			"payment_status": model.PaymentStatusFailed,
			"payment": datatypes.JSONMap{
				"method":         payload.Method,
				"failure_reason": payload.FailureReason,
				"gateway_meta":   payload.GatewayMeta,
				"failed_at":      time.Now().Format(time.RFC3339),
			},
		}
		if err := s.orders.UpdateFields(ctx, tenantID, orderID, fields); err != nil {
			return nil, err
		}
		if _, err := s.dispatcher.Dispatch(ctx, tenantID, plugin.HookAfterPaymentFailed, payload); err != nil {
			s.logger.Errorw("after_payment_failed 插件链失败", "tenant_id", tenantID, "order_id", orderID, "error", err)
		}
		return &dto.PaymentResp{
			OrderID:       orderID,
			Status:        order.Status,
			PaymentStatus: model.PaymentStatusFailed,
			FailureReason: payload.FailureReason,
		}, nil
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":         model.OrderStatusConfirmed,
		"payment_status": model.PaymentStatusPaid,
		"paid_at":        now,
		"payment": datatypes.JSONMap{
			"method":         payload.Method,
			"transaction_id": txnID,
			"amount":         payload.Amount,
			"currency":       payload.Currency,
			"gateway_meta":   payload.GatewayMeta,
			"paid_at":        now.Format(time.RFC3339),
		},
	}
	if err := s.orders.UpdateFields(ctx, tenantID, orderID, fields); err != nil {
		return nil, err
	}

	if _, err := s.dispatcher.Dispatch(ctx, tenantID, plugin.HookAfterPaymentSuccess, payload); err != nil {
		s.logger.Errorw("after_payment_success 插件链失败", "tenant_id", tenantID, "order_id", orderID, "error", err)
	}

	return &dto.PaymentResp{
		OrderID:       orderID,
		Status:        model.OrderStatusConfirmed,
		PaymentStatus: model.PaymentStatusPaid,
		TransactionID: txnID,
	}, nil
}

// charge 通过租户启用的网关扣款
// 当前为模拟实现：有启用网关即扣款成功，真实网关接入走 provider 分支
func (s *PaymentService) charge(ctx context.Context, tenantID int64, payload *plugin.PaymentPayload) (string, error) {
	gateways, err := s.gateways.ListActive(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if len(gateways) == 0 {
		return "", fmt.Errorf("租户未启用支付网关")
	}

	gateway := gateways[0]
	if payload.Amount <= 0 {
		return "", fmt.Errorf("支付金额无效")
	}

	txnID := fmt.Sprintf("txn_%s", uuid.NewString())
	s.logger.Infow("网关扣款成功",
		"tenant_id", tenantID,
		"order_id", payload.OrderID,
		"provider", gateway.Provider,
		"amount", payload.Amount,
		"transaction_id", txnID,
	)
	return txnID, nil
}
