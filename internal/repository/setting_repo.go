package repository

import (
	"context"

	"gorm.io/gorm"

	"shophub_v1_202608/pkg/errs"
)

// ==================== 泛型配置仓储 ====================

// SettingRepository 租户配置实体仓储
// Workflow / DeliveryMethod / PaymentGateway / Integration 四张表列结构一致，
// 共用同一套 CRUD，租户过滤只在这一处实现
type SettingRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, tenantID, id int64) (*T, error)
	List(ctx context.Context, tenantID int64, page, limit int) (*Page[T], error)
	ListActive(ctx context.Context, tenantID int64) ([]T, error)
	UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type settingRepo[T any] struct {
	db       *gorm.DB
	notFound string // 实体中文名，用于错误消息
}

// NewSettingRepository 创建配置仓储
func NewSettingRepository[T any](db *gorm.DB, entityName string) SettingRepository[T] {
	return &settingRepo[T]{db: db, notFound: entityName + "不存在"}
}

func (r *settingRepo[T]) Create(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Create(entity).Error
	return errs.FromDB(err, r.notFound, "记录已存在")
}

func (r *settingRepo[T]) GetByID(ctx context.Context, tenantID, id int64) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&entity, id).Error
	if err != nil {
		return nil, errs.FromDB(err, r.notFound, "")
	}
	return &entity, nil
}

func (r *settingRepo[T]) List(ctx context.Context, tenantID int64, page, limit int) (*Page[T], error) {
	var items []T
	var total int64

	query := r.db.WithContext(ctx).Model(new(T)).Scopes(TenantScope(tenantID))
	if err := query.Count(&total).Error; err != nil {
		return nil, errs.Internal(err)
	}

	page, limit = NormalizePage(page, limit)
	err := query.Order("created_at DESC, id DESC").Scopes(Paginate(page, limit)).Find(&items).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return NewPage(items, total, page, limit), nil
}

func (r *settingRepo[T]) ListActive(ctx context.Context, tenantID int64) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return items, nil
}

func (r *settingRepo[T]) UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound(r.notFound)
	}
	return nil
}

func (r *settingRepo[T]) Delete(ctx context.Context, tenantID, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Delete(new(T))
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound(r.notFound)
	}
	return nil
}
