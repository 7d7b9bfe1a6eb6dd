package service

import (
	"context"
	"strings"
	"testing"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/plugin"
	"shophub_v1_202608/pkg/errs"
)

// seedGateway 给租户 1 启用一个支付网关
func (e *orderEnv) seedGateway(t *testing.T) {
	t.Helper()
	gw := &model.PaymentGateway{
		TenantOwned: model.TenantOwned{TenantID: 1},
		Name:        "测试网关",
		Provider:    "mock",
		IsActive:    true,
	}
	if err := e.gateways.Create(context.Background(), gw); err != nil {
		t.Fatalf("创建支付网关失败: %v", err)
	}
}

// createOrder 下一单在售商品，返回订单 ID
func (e *orderEnv) createOrder(t *testing.T, price int64) int64 {
	t.Helper()
	pid := e.seedProduct(t, "手工杯子", price, model.ProductStatusActive)
	order, err := e.orders.Create(context.Background(), 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: pid, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	return order.ID
}

func TestProcessPaymentSuccess(t *testing.T) {
	env := setupOrderEnv(t)
	env.seedGateway(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	resp, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if err != nil {
		t.Fatalf("支付失败: %v", err)
	}
	if resp.PaymentStatus != model.PaymentStatusPaid || resp.Status != model.OrderStatusConfirmed {
		t.Fatalf("支付结果错误: %+v", resp)
	}
	if !strings.HasPrefix(resp.TransactionID, "txn_") {
		t.Fatalf("交易号格式错误: %s", resp.TransactionID)
	}

	// 订单状态与支付快照应落库
	order, err := env.orders.Get(ctx, 1, orderID)
	if err != nil {
		t.Fatalf("读取订单失败: %v", err)
	}
	if order.PaymentStatus != model.PaymentStatusPaid || order.PaidAt == nil {
		t.Fatalf("支付状态未落库: %s paid_at=%v", order.PaymentStatus, order.PaidAt)
	}
	if order.Payment["transaction_id"] != resp.TransactionID {
		t.Fatalf("支付快照错误: %+v", order.Payment)
	}
}

func TestProcessPaymentNoGateway(t *testing.T) {
	env := setupOrderEnv(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	// 未启用网关：不是错误，而是支付失败的业务结果
	resp, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if err != nil {
		t.Fatalf("网关缺失不应返回错误: %v", err)
	}
	if resp.PaymentStatus != model.PaymentStatusFailed || resp.FailureReason == "" {
		t.Fatalf("应返回失败结果: %+v", resp)
	}

	order, err := env.orders.Get(ctx, 1, orderID)
	if err != nil {
		t.Fatalf("读取订单失败: %v", err)
	}
	if order.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("失败状态未落库: %s", order.PaymentStatus)
	}
	// 订单本身保持待处理，可重试支付
	if order.Status != model.OrderStatusPending {
		t.Fatalf("订单状态不应改变: %s", order.Status)
	}
}

func TestProcessPaymentDoublePay(t *testing.T) {
	env := setupOrderEnv(t)
	env.seedGateway(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	if _, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"}); err != nil {
		t.Fatalf("首次支付失败: %v", err)
	}
	_, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if !errs.IsConflict(err) {
		t.Fatalf("重复支付应返回 409: %v", err)
	}
}

func TestProcessPaymentCancelledOrder(t *testing.T) {
	env := setupOrderEnv(t)
	env.seedGateway(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	cancelled := model.OrderStatusCancelled
	if _, err := env.orders.Update(ctx, 1, orderID, dto.OrderUpdateReq{Status: &cancelled}); err != nil {
		t.Fatalf("取消订单失败: %v", err)
	}
	_, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if !errs.IsConflict(err) {
		t.Fatalf("已取消订单支付应返回 409: %v", err)
	}
}

func TestProcessPaymentAfterHookErrorKeepsConfirmed(t *testing.T) {
	flaky := &stubPlugin{
		slug: "flaky-notifier",
		hooks: map[plugin.HookName]plugin.HookFunc{
			plugin.HookAfterPaymentSuccess: func(ctx context.Context, hc *plugin.HookContext, p plugin.Payload) (plugin.Payload, error) {
				return nil, errs.Internal(context.DeadlineExceeded)
			},
		},
	}
	env := setupOrderEnv(t, flaky)
	env.seedGateway(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	// after hook 失败只记日志，支付结果不受影响
	resp, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if err != nil {
		t.Fatalf("after hook 失败不应影响支付: %v", err)
	}
	if resp.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("支付结果错误: %+v", resp)
	}

	order, err := env.orders.Get(ctx, 1, orderID)
	if err != nil {
		t.Fatalf("读取订单失败: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("订单应保持已确认: %s", order.Status)
	}
}

func TestProcessPaymentBeforeHookAborts(t *testing.T) {
	reject := &stubPlugin{
		slug: "risk-control",
		hooks: map[plugin.HookName]plugin.HookFunc{
			plugin.HookBeforePaymentProcess: func(ctx context.Context, hc *plugin.HookContext, p plugin.Payload) (plugin.Payload, error) {
				return nil, errs.Forbidden("风控拦截")
			},
		},
	}
	env := setupOrderEnv(t, reject)
	env.seedGateway(t)
	ctx := context.Background()
	orderID := env.createOrder(t, 1500)

	_, err := env.payments.ProcessPayment(ctx, 1, orderID, dto.PaymentReq{Method: "card"})
	if err == nil {
		t.Fatal("before hook 报错时应中止支付")
	}
	if errs.AsAppError(err).StatusCode != 403 {
		t.Fatalf("应保留插件返回的 403: %v", err)
	}

	// 支付状态不应改变
	order, err := env.orders.Get(ctx, 1, orderID)
	if err != nil {
		t.Fatalf("读取订单失败: %v", err)
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("中止后支付状态不应改变: %s", order.PaymentStatus)
	}
}
