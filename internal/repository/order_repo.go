package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储，全部操作带租户过滤
type OrderRepository interface {
	// CreateWithItems 订单主表和明细同一事务落库（避免写一半留下残缺订单）
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	GetByID(ctx context.Context, tenantID, id int64) (*model.Order, error)
	List(ctx context.Context, tenantID int64, filter OrderFilter) (*Page[model.Order], error)
	UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error

	// ExpireStalePending 把超时未支付的订单标记为失败（定时任务用）
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrderFilter 订单过滤条件
type OrderFilter struct {
	Status        string
	PaymentStatus string
	UserID        int64
	Page          int
	Limit         int
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.OrderItems = items
		return nil
	})
	return errs.FromDB(err, "订单不存在", "订单已存在")
}

func (r *orderRepo) GetByID(ctx context.Context, tenantID, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Preload("OrderItems").
		First(&order, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "订单不存在", "")
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, tenantID int64, filter OrderFilter) (*Page[model.Order], error) {
	var orders []model.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Order{}).Scopes(TenantScope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, errs.Internal(err)
	}

	page, limit := NormalizePage(filter.Page, filter.Limit)
	err := query.Order("created_at DESC, id DESC").Scopes(Paginate(page, limit)).Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return NewPage(orders, total, page, limit), nil
}

func (r *orderRepo) UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("订单不存在")
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, tenantID, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Delete(&model.Order{}, id)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("订单不存在")
	}
	return nil
}

func (r *orderRepo) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	// 全租户维护操作，不走 TenantScope
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("payment_status = ? AND status = ? AND created_at < ?",
			model.PaymentStatusPending, model.OrderStatusPending, cutoff).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusFailed,
			"status":         model.OrderStatusCancelled,
		})
	return result.RowsAffected, result.Error
}
