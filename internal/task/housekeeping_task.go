package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/utils"
)

// ==================== HousekeepingTask 后台维护任务 ====================

// HousekeepingTask 定时清理内存窗口和过期业务数据
// 三项工作：限流器窗口清理、缓存清理、超时未支付订单失效
type HousekeepingTask struct {
	orders  repository.OrderRepository
	limiter *middleware.RateLimiter
	cache   *utils.TTLCache
	logger  *zap.SugaredLogger
	cron    *cron.Cron

	// 超过这个时长未支付的 pending 订单标记为失效
	orderTTL time.Duration
}

// NewHousekeepingTask 创建维护任务
func NewHousekeepingTask(orders repository.OrderRepository, limiter *middleware.RateLimiter, cache *utils.TTLCache, logger *zap.SugaredLogger) *HousekeepingTask {
	return &HousekeepingTask{
		orders:   orders,
		limiter:  limiter,
		cache:    cache,
		logger:   logger,
		cron:     cron.New(),
		orderTTL: 24 * time.Hour,
	}
}

// SetOrderTTL 调整订单失效时长
func (t *HousekeepingTask) SetOrderTTL(ttl time.Duration) {
	t.orderTTL = ttl
}

// Start 注册并启动定时任务
func (t *HousekeepingTask) Start() error {
	// 每 5 分钟清一次内存窗口
	if _, err := t.cron.AddFunc("*/5 * * * *", t.sweepMemory); err != nil {
		return err
	}
	// 每小时处理一次超时订单
	if _, err := t.cron.AddFunc("0 * * * *", t.expireOrders); err != nil {
		return err
	}

	t.cron.Start()
	t.logger.Info("后台维护任务已启动")
	return nil
}

// Stop 停止任务，等待在跑的 job 结束
func (t *HousekeepingTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("后台维护任务已停止")
}

func (t *HousekeepingTask) sweepMemory() {
	swept := t.limiter.Sweep()
	expired := t.cache.Sweep()
	if swept > 0 || expired > 0 {
		t.logger.Debugw("内存清理完成", "limiter_windows", swept, "cache_entries", expired)
	}
}

func (t *HousekeepingTask) expireOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-t.orderTTL)
	n, err := t.orders.ExpireStalePending(ctx, cutoff)
	if err != nil {
		t.logger.Errorw("超时订单处理失败", "error", err)
		return
	}
	if n > 0 {
		t.logger.Infow("超时订单已失效", "count", n, "cutoff", cutoff)
	}
}
