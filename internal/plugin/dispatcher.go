package plugin

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shophub_v1_202608/internal/repository"
)

// ==================== Dispatcher hook 调度器 ====================

// Dispatcher 按租户安装顺序调度 hook handler
// before_* hook：任一 handler 出错即中止，错误原样返回给调用方
// after_* hook：错误只记日志，不影响已提交的主操作（fire-and-forget）
type Dispatcher struct {
	registry *Registry
	installs repository.PluginRepository
	db       *gorm.DB
	logger   *zap.SugaredLogger
	events   *EventBus
}

// NewDispatcher 创建调度器
func NewDispatcher(registry *Registry, installs repository.PluginRepository, db *gorm.DB, logger *zap.SugaredLogger, events *EventBus) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		installs: installs,
		db:       db,
		logger:   logger,
		events:   events,
	}
}

// Dispatch 依次调用该租户所有启用插件在 hook 点上的 handler
// 载荷在 handler 链上串联传递，最终（可能被改写的）载荷返回给调用方
func (d *Dispatcher) Dispatch(ctx context.Context, tenantID int64, hook HookName, payload Payload) (Payload, error) {
	installs, err := d.installs.ListEnabled(ctx, tenantID)
	if err != nil {
		if hook.IsBefore() {
			return payload, err
		}
		d.logger.Errorw("加载租户插件失败", "tenant_id", tenantID, "hook", hook, "error", err)
		return payload, nil
	}

	for _, install := range installs {
		if install.Plugin == nil {
			continue
		}
		impl, ok := d.registry.Get(install.Plugin.Slug)
		if !ok {
			// 目录里有、本进程没有实现：跳过并告警
			d.logger.Warnw("插件无本地实现，跳过", "tenant_id", tenantID, "plugin", install.Plugin.Slug)
			continue
		}
		fn, ok := impl.Hooks()[hook]
		if !ok {
			continue
		}

		hc := &HookContext{
			TenantID: tenantID,
			Config:   install.Config,
			DB:       d.db,
			Logger:   d.logger.With("tenant_id", tenantID, "plugin", install.Plugin.Slug),
			Events:   d.events,
		}

		out, err := d.invoke(ctx, fn, hc, payload)
		if err != nil {
			if hook.IsBefore() {
				return payload, fmt.Errorf("插件 %s 拒绝操作: %w", install.Plugin.Slug, err)
			}
			d.logger.Errorw("after hook 执行失败（不回滚主操作）",
				"tenant_id", tenantID, "plugin", install.Plugin.Slug, "hook", hook, "error", err)
			continue
		}
		if out != nil {
			payload = out
		}
	}

	return payload, nil
}

// invoke 调用单个 handler，panic 转为 error
func (d *Dispatcher) invoke(ctx context.Context, fn HookFunc, hc *HookContext, p Payload) (out Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn(ctx, hc, p)
}
