package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"shophub_v1_202608/pkg/errs"
)

// ==================== payment-validator 支付校验 ====================

// PaymentValidator 支付前校验插件
// 配置项：min_amount(分)、allowed_currencies([]string)、required_customer_fields([]string)
// 任一规则不满足时返回错误，中止支付
type PaymentValidator struct{}

func (p *PaymentValidator) Slug() string { return "payment-validator" }

func (p *PaymentValidator) Hooks() map[HookName]HookFunc {
	return map[HookName]HookFunc{
		HookBeforePaymentProcess: p.validate,
	}
}

func (p *PaymentValidator) validate(_ context.Context, hc *HookContext, in Payload) (Payload, error) {
	payment, ok := in.(*PaymentPayload)
	if !ok {
		return in, nil
	}

	if min := cast.ToInt64(hc.Config["min_amount"]); min > 0 && payment.Amount < min {
		return nil, errs.Validation(fmt.Sprintf("支付金额低于最小限额 %d", min))
	}

	if allowed := cast.ToStringSlice(hc.Config["allowed_currencies"]); len(allowed) > 0 {
		found := false
		for _, c := range allowed {
			if c == payment.Currency {
				found = true
				break
			}
		}
		if !found {
			return nil, errs.Validation("不支持的币种: " + payment.Currency)
		}
	}

	if required := cast.ToStringSlice(hc.Config["required_customer_fields"]); len(required) > 0 {
		for _, field := range required {
			v, ok := payment.Customer[field]
			if !ok || v == "" || v == nil {
				return nil, errs.Validation("缺少必填客户字段: " + field)
			}
		}
	}

	return payment, nil
}

// ==================== gateway-meta 网关元数据注入 ====================

// GatewayMeta 在支付载荷上注入幂等键和网关元数据
// 配置项：provider（写入 gateway_meta.gateway）
type GatewayMeta struct{}

func (p *GatewayMeta) Slug() string { return "gateway-meta" }

func (p *GatewayMeta) Hooks() map[HookName]HookFunc {
	return map[HookName]HookFunc{
		HookBeforePaymentProcess: p.inject,
	}
}

func (p *GatewayMeta) inject(_ context.Context, hc *HookContext, in Payload) (Payload, error) {
	payment, ok := in.(*PaymentPayload)
	if !ok {
		return in, nil
	}

	if payment.IdempotencyKey == "" {
		payment.IdempotencyKey = uuid.NewString()
	}
	if payment.GatewayMeta == nil {
		payment.GatewayMeta = map[string]interface{}{}
	}
	if provider := cast.ToString(hc.Config["provider"]); provider != "" {
		payment.GatewayMeta["gateway"] = provider
	}
	payment.GatewayMeta["injected_at"] = time.Now().UTC().Format(time.RFC3339)

	return payment, nil
}

// ==================== webhook-notifier 事件通知 ====================

// WebhookNotifier 把订单/支付事件 POST 到配置的 URL
// 只挂 after_* hook：通知失败不影响主操作
// 配置项：url（必填）、secret（可选，作为 X-Webhook-Secret 头）
type WebhookNotifier struct {
	client *resty.Client
}

// NewWebhookNotifier 创建通知插件
func NewWebhookNotifier() *WebhookNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)
	return &WebhookNotifier{client: client}
}

func (p *WebhookNotifier) Slug() string { return "webhook-notifier" }

func (p *WebhookNotifier) Hooks() map[HookName]HookFunc {
	return map[HookName]HookFunc{
		HookAfterOrderCreate:    p.notify("order.created"),
		HookAfterPaymentSuccess: p.notify("payment.succeeded"),
		HookAfterPaymentFailed:  p.notify("payment.failed"),
	}
}

func (p *WebhookNotifier) notify(event string) HookFunc {
	return func(ctx context.Context, hc *HookContext, in Payload) (Payload, error) {
		url := cast.ToString(hc.Config["url"])
		if url == "" {
			return in, fmt.Errorf("webhook url 未配置")
		}

		req := p.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"event":     event,
				"tenant_id": hc.TenantID,
				"payload":   in,
				"sent_at":   time.Now().UTC().Format(time.RFC3339),
			})
		if secret := cast.ToString(hc.Config["secret"]); secret != "" {
			req.SetHeader("X-Webhook-Secret", secret)
		}

		resp, err := req.Post(url)
		if err != nil {
			return in, err
		}
		if resp.IsError() {
			return in, fmt.Errorf("webhook 响应 %d", resp.StatusCode())
		}

		if hc.Events != nil {
			hc.Events.Emit("webhook.delivered", map[string]interface{}{
				"event": event, "tenant_id": hc.TenantID,
			})
		}
		return in, nil
	}
}
