package repository

import (
	"context"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// ProductTypeRepository 商品类型仓储，全部操作带租户过滤
type ProductTypeRepository interface {
	Create(ctx context.Context, pt *model.ProductType) error
	GetByID(ctx context.Context, tenantID, id int64) (*model.ProductType, error)
	GetBySlug(ctx context.Context, tenantID int64, slug string) (*model.ProductType, error)
	List(ctx context.Context, tenantID int64, page, limit int) (*Page[model.ProductType], error)
	UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error
}

// ==================== 仓储实现 ====================

type productTypeRepo struct {
	db *gorm.DB
}

// NewProductTypeRepository 创建商品类型仓储
func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepo{db: db}
}

func (r *productTypeRepo) Create(ctx context.Context, pt *model.ProductType) error {
	// (tenant_id, slug) 复合唯一索引兜底
	err := r.db.WithContext(ctx).Create(pt).Error
	return errs.FromDB(err, "商品类型不存在", "该租户下 slug 已存在")
}

func (r *productTypeRepo) GetByID(ctx context.Context, tenantID, id int64) (*model.ProductType, error) {
	var pt model.ProductType
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&pt, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "商品类型不存在", "")
	}
	return &pt, nil
}

func (r *productTypeRepo) GetBySlug(ctx context.Context, tenantID int64, slug string) (*model.ProductType, error) {
	var pt model.ProductType
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("slug = ?", slug).
		First(&pt).Error
	if err != nil {
		return nil, errs.FromDB(err, "商品类型不存在", "")
	}
	return &pt, nil
}

func (r *productTypeRepo) List(ctx context.Context, tenantID int64, page, limit int) (*Page[model.ProductType], error) {
	var items []model.ProductType
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ProductType{}).Scopes(TenantScope(tenantID))
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

func (r *productTypeRepo) UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductType{}).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return errs.FromDB(result.Error, "商品类型不存在", "该租户下 slug 已存在")
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("商品类型不存在")
	}
	return nil
}

func (r *productTypeRepo) Delete(ctx context.Context, tenantID, id int64) error {
	// 硬删除，释放 (tenant_id, slug) 唯一槽位
	result := r.db.WithContext(ctx).
		Unscoped().
		Scopes(TenantScope(tenantID)).
		Delete(&model.ProductType{}, id)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("商品类型不存在")
	}
	return nil
}
