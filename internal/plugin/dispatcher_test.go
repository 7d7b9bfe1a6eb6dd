package plugin

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/errs"
	"shophub_v1_202608/pkg/logger"
)

// ==================== 测试用插件 ====================

// fakePlugin 测试桩：hook 行为由字段注入
type fakePlugin struct {
	slug  string
	hooks map[HookName]HookFunc
}

func (p *fakePlugin) Slug() string                 { return p.slug }
func (p *fakePlugin) Hooks() map[HookName]HookFunc { return p.hooks }

// setupDispatcher 内存库 + 注册并给租户 1 安装给定插件
func setupDispatcher(t *testing.T, plugins ...*fakePlugin) *Dispatcher {
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	repo := repository.NewPluginRepository(db)
	registry := NewRegistry()
	ctx := context.Background()

	for _, p := range plugins {
		registry.Register(p)
		catalog := &model.Plugin{Slug: p.slug, Name: p.slug, Status: model.PluginStatusPublished}
		if err := repo.UpsertCatalog(ctx, catalog); err != nil {
			t.Fatalf("插件入目录失败: %v", err)
		}
		install := &model.TenantPlugin{TenantID: 1, PluginID: catalog.ID, Enabled: true, Config: datatypes.JSONMap{}}
		if err := repo.Install(ctx, install); err != nil {
			t.Fatalf("安装插件失败: %v", err)
		}
	}

	zlog := logger.NewNop()
	return NewDispatcher(registry, repo, db, zlog, NewEventBus(zlog))
}

func TestDispatchBeforeHookAborts(t *testing.T) {
	reject := &fakePlugin{
		slug: "rejector",
		hooks: map[HookName]HookFunc{
			HookBeforeOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				return nil, errs.Validation("金额太小")
			},
		},
	}
	d := setupDispatcher(t, reject)

	payload := &OrderPayload{TotalAmount: 10, Currency: "USD"}
	_, err := d.Dispatch(context.Background(), 1, HookBeforeOrderCreate, payload)
	if err == nil {
		t.Fatal("before hook 报错时应中止操作")
	}
	// 包装后仍然能解出原始 AppError
	appErr := errs.AsAppError(err)
	if appErr.StatusCode != 400 {
		t.Fatalf("应保留 400 状态码，实际 %d", appErr.StatusCode)
	}
}

func TestDispatchAfterHookErrorSwallowed(t *testing.T) {
	failing := &fakePlugin{
		slug: "flaky-notifier",
		hooks: map[HookName]HookFunc{
			HookAfterOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				return nil, errors.New("webhook 超时")
			},
		},
	}
	d := setupDispatcher(t, failing)

	payload := &OrderPayload{OrderID: 1, TotalAmount: 100}
	out, err := d.Dispatch(context.Background(), 1, HookAfterOrderCreate, payload)
	if err != nil {
		t.Fatalf("after hook 报错不应向上传播: %v", err)
	}
	if out != payload {
		t.Fatal("after hook 失败后应返回原载荷")
	}
}

func TestDispatchPayloadThreading(t *testing.T) {
	// 两个插件依次加价，顺序按安装时间（position 递增）
	addTen := &fakePlugin{
		slug: "add-ten",
		hooks: map[HookName]HookFunc{
			HookBeforeOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				op := p.(*OrderPayload)
				op.TotalAmount += 10
				return op, nil
			},
		},
	}
	double := &fakePlugin{
		slug: "double",
		hooks: map[HookName]HookFunc{
			HookBeforeOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				op := p.(*OrderPayload)
				op.TotalAmount *= 2
				return op, nil
			},
		},
	}
	d := setupDispatcher(t, addTen, double)

	out, err := d.Dispatch(context.Background(), 1, HookBeforeOrderCreate, &OrderPayload{TotalAmount: 100})
	if err != nil {
		t.Fatalf("dispatch 失败: %v", err)
	}
	got := out.(*OrderPayload)
	// 先 +10 再 *2：(100+10)*2 = 220；顺序颠倒会得到 210
	if got.TotalAmount != 220 {
		t.Fatalf("hook 执行顺序或载荷串联不对: 期望 220 实际 %d", got.TotalAmount)
	}
}

func TestDispatchPanicRecovered(t *testing.T) {
	panics := &fakePlugin{
		slug: "panicky",
		hooks: map[HookName]HookFunc{
			HookBeforeOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				panic("意外崩溃")
			},
		},
	}
	d := setupDispatcher(t, panics)

	_, err := d.Dispatch(context.Background(), 1, HookBeforeOrderCreate, &OrderPayload{})
	if err == nil {
		t.Fatal("handler panic 应转为错误返回")
	}
}

func TestDispatchSkipsDisabledAndUnregistered(t *testing.T) {
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	repo := repository.NewPluginRepository(db)
	registry := NewRegistry()
	ctx := context.Background()

	called := false
	enabled := &fakePlugin{
		slug: "enabled-one",
		hooks: map[HookName]HookFunc{
			HookBeforeOrderCreate: func(ctx context.Context, hc *HookContext, p Payload) (Payload, error) {
				called = true
				return p, nil
			},
		},
	}
	registry.Register(enabled)

	// enabled-one：已安装且启用；dead-one：目录里有但本进程无实现；off-one：安装但停用
	for _, slug := range []string{"enabled-one", "dead-one", "off-one"} {
		catalog := &model.Plugin{Slug: slug, Name: slug, Status: model.PluginStatusPublished}
		if err := repo.UpsertCatalog(ctx, catalog); err != nil {
			t.Fatalf("插件入目录失败: %v", err)
		}
		install := &model.TenantPlugin{TenantID: 1, PluginID: catalog.ID, Enabled: slug != "off-one"}
		if err := repo.Install(ctx, install); err != nil {
			t.Fatalf("安装插件失败: %v", err)
		}
	}

	zlog := logger.NewNop()
	d := NewDispatcher(registry, repo, db, zlog, NewEventBus(zlog))
	if _, err := d.Dispatch(ctx, 1, HookBeforeOrderCreate, &OrderPayload{}); err != nil {
		t.Fatalf("dispatch 失败: %v", err)
	}
	if !called {
		t.Fatal("启用且已注册的插件未被调用")
	}
}
