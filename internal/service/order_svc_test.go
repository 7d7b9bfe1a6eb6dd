package service

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/plugin"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/errs"
	"shophub_v1_202608/pkg/logger"
)

// ==================== 测试基础设施 ====================

// stubPlugin 测试桩，hook 行为由字段注入
type stubPlugin struct {
	slug  string
	hooks map[plugin.HookName]plugin.HookFunc
}

func (p *stubPlugin) Slug() string                               { return p.slug }
func (p *stubPlugin) Hooks() map[plugin.HookName]plugin.HookFunc { return p.hooks }

// orderEnv 订单/支付测试共用环境
type orderEnv struct {
	db       *gorm.DB
	orders   *OrderService
	payments *PaymentService
	gateways repository.SettingRepository[model.PaymentGateway]
}

// setupOrderEnv 内存库 + 给租户 1 安装给定插件
func setupOrderEnv(t *testing.T, plugins ...*stubPlugin) *orderEnv {
	t.Helper()
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}

	pluginRepo := repository.NewPluginRepository(db)
	registry := plugin.NewRegistry()
	ctx := context.Background()
	for _, p := range plugins {
		registry.Register(p)
		catalog := &model.Plugin{Slug: p.slug, Name: p.slug, Status: model.PluginStatusPublished}
		if err := pluginRepo.UpsertCatalog(ctx, catalog); err != nil {
			t.Fatalf("插件入目录失败: %v", err)
		}
		install := &model.TenantPlugin{TenantID: 1, PluginID: catalog.ID, Enabled: true, Config: datatypes.JSONMap{}}
		if err := pluginRepo.Install(ctx, install); err != nil {
			t.Fatalf("安装插件失败: %v", err)
		}
	}

	zlog := logger.NewNop()
	dispatcher := plugin.NewDispatcher(registry, pluginRepo, db, zlog, plugin.NewEventBus(zlog))

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	gatewayRepo := repository.NewSettingRepository[model.PaymentGateway](db, "支付网关")

	return &orderEnv{
		db:       db,
		orders:   NewOrderService(orderRepo, productRepo, dispatcher, zlog),
		payments: NewPaymentService(orderRepo, gatewayRepo, dispatcher, zlog),
		gateways: gatewayRepo,
	}
}

// seedProduct 给租户 1 建一个类型和商品，返回商品 ID
func (e *orderEnv) seedProduct(t *testing.T, title string, price int64, status string) int64 {
	t.Helper()
	pt := &model.ProductType{TenantID: 1, Name: "默认类型", Slug: "default-" + title}
	if err := e.db.Create(pt).Error; err != nil {
		t.Fatalf("创建商品类型失败: %v", err)
	}
	p := &model.Product{
		TenantOwned:   model.TenantOwned{TenantID: 1},
		ProductTypeID: pt.ID,
		Title:         title,
		PriceAmount:   price,
		Currency:      "USD",
		Status:        status,
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	return p.ID
}

// ==================== 订单测试 ====================

func TestOrderCreatePriceSnapshot(t *testing.T) {
	env := setupOrderEnv(t)
	ctx := context.Background()
	pid := env.seedProduct(t, "手工杯子", 1500, model.ProductStatusActive)

	order, err := env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: pid, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	if order.SubtotalAmount != 4500 || order.TotalAmount != 4500 {
		t.Fatalf("金额快照错误: subtotal=%d total=%d", order.SubtotalAmount, order.TotalAmount)
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("初始状态错误: %s/%s", order.Status, order.PaymentStatus)
	}
	if order.Pricing != nil {
		t.Fatalf("未调价时不应记录 pricing")
	}

	// 明细行应落库
	loaded, err := env.orders.Get(ctx, 1, order.ID)
	if err != nil {
		t.Fatalf("读取订单失败: %v", err)
	}
	if len(loaded.OrderItems) != 1 || loaded.OrderItems[0].UnitPrice != 1500 {
		t.Fatalf("订单明细错误: %+v", loaded.OrderItems)
	}
}

func TestOrderCreateRejectsArchivedAndUnknown(t *testing.T) {
	env := setupOrderEnv(t)
	ctx := context.Background()
	archived := env.seedProduct(t, "旧款", 800, model.ProductStatusArchived)

	_, err := env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: archived, Quantity: 1}},
	})
	if err == nil || errs.AsAppError(err).StatusCode != 400 {
		t.Fatalf("下架商品下单应返回 400: %v", err)
	}

	_, err = env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: 99999, Quantity: 1}},
	})
	if err == nil || errs.AsAppError(err).StatusCode != 400 {
		t.Fatalf("不存在的商品下单应返回 400: %v", err)
	}
}

func TestOrderCreatePluginDiscount(t *testing.T) {
	// 折扣插件：总价打九折
	discount := &stubPlugin{
		slug: "discount",
		hooks: map[plugin.HookName]plugin.HookFunc{
			plugin.HookBeforeOrderCreate: func(ctx context.Context, hc *plugin.HookContext, p plugin.Payload) (plugin.Payload, error) {
				op := p.(*plugin.OrderPayload)
				op.TotalAmount = op.TotalAmount * 9 / 10
				return op, nil
			},
		},
	}
	env := setupOrderEnv(t, discount)
	ctx := context.Background()
	pid := env.seedProduct(t, "手工杯子", 1000, model.ProductStatusActive)

	order, err := env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: pid, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	if order.SubtotalAmount != 2000 {
		t.Fatalf("小计不应受插件影响: %d", order.SubtotalAmount)
	}
	if order.TotalAmount != 1800 {
		t.Fatalf("插件折扣未生效: %d", order.TotalAmount)
	}
	if order.Pricing == nil || order.Pricing["adjusted"] != true {
		t.Fatalf("调价后应记录 pricing: %+v", order.Pricing)
	}
}

func TestOrderCreatePluginAbort(t *testing.T) {
	reject := &stubPlugin{
		slug: "fraud-check",
		hooks: map[plugin.HookName]plugin.HookFunc{
			plugin.HookBeforeOrderCreate: func(ctx context.Context, hc *plugin.HookContext, p plugin.Payload) (plugin.Payload, error) {
				return nil, errs.Validation("疑似欺诈订单")
			},
		},
	}
	env := setupOrderEnv(t, reject)
	ctx := context.Background()
	pid := env.seedProduct(t, "手工杯子", 1000, model.ProductStatusActive)

	_, err := env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: pid, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("before hook 报错时应中止下单")
	}
	if errs.AsAppError(err).StatusCode != 400 {
		t.Fatalf("应保留插件返回的 400: %v", err)
	}

	// 订单不应落库
	page, err := env.orders.List(ctx, 1, dto.OrderListReq{})
	if err != nil {
		t.Fatalf("查询订单失败: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("中止后不应有订单落库: %d", page.Total)
	}
}

func TestOrderCancelPaidConflict(t *testing.T) {
	env := setupOrderEnv(t)
	ctx := context.Background()
	pid := env.seedProduct(t, "手工杯子", 1000, model.ProductStatusActive)

	order, err := env.orders.Create(ctx, 1, dto.OrderCreateReq{
		Items: []dto.OrderItemReq{{ProductID: pid, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	if err := env.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("payment_status", model.PaymentStatusPaid).Error; err != nil {
		t.Fatalf("标记已支付失败: %v", err)
	}

	cancelled := model.OrderStatusCancelled
	_, err = env.orders.Update(ctx, 1, order.ID, dto.OrderUpdateReq{Status: &cancelled})
	if !errs.IsConflict(err) {
		t.Fatalf("取消已支付订单应返回 409: %v", err)
	}
}
