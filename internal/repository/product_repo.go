package repository

import (
	"context"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储，全部操作带租户过滤
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, tenantID, id int64) (*model.Product, error)
	List(ctx context.Context, tenantID int64, filter ProductFilter) (*Page[model.Product], error)
	UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error

	// 属性（开放 key/value，整体替换）
	ReplaceAttributes(ctx context.Context, tenantID, productID int64, attrs []model.ProductAttribute) error

	// 店面读路径：排除 draft 状态
	ListPublished(ctx context.Context, tenantID int64, page, limit int) (*Page[model.Product], error)
	GetPublished(ctx context.Context, tenantID, id int64) (*model.Product, error)
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Status        string
	ProductTypeID int64
	Keyword       string
	Page          int
	Limit         int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	return errs.FromDB(err, "商品不存在", "商品已存在")
}

func (r *productRepo) GetByID(ctx context.Context, tenantID, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Preload("Attributes").
		First(&product, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "商品不存在", "")
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, tenantID int64, filter ProductFilter) (*Page[model.Product], error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).Scopes(TenantScope(tenantID))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProductTypeID > 0 {
		query = query.Where("product_type_id = ?", filter.ProductTypeID)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}

	return r.paginate(query, filter.Page, filter.Limit)
}

func (r *productRepo) UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return errs.FromDB(result.Error, "商品不存在", "商品已存在")
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("商品不存在")
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Delete(&model.Product{}, id)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("商品不存在")
	}
	return nil
}

// ReplaceAttributes 整体替换商品属性
// 先校验商品归属（带租户过滤），再在事务里删旧插新
func (r *productRepo) ReplaceAttributes(ctx context.Context, tenantID, productID int64, attrs []model.ProductAttribute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Scopes(TenantScope(tenantID)).First(&product, productID).Error; err != nil {
			return errs.FromDB(err, "商品不存在", "")
		}

		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&model.ProductAttribute{}).Error; err != nil {
			return err
		}
		if len(attrs) == 0 {
			return nil
		}
		for i := range attrs {
			attrs[i].ProductID = productID
		}
		return tx.Create(&attrs).Error
	})
}

func (r *productRepo) ListPublished(ctx context.Context, tenantID int64, page, limit int) (*Page[model.Product], error) {
	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Scopes(TenantScope(tenantID)).
		Where("status <> ?", model.ProductStatusDraft)
	return r.paginate(query, page, limit)
}

func (r *productRepo) GetPublished(ctx context.Context, tenantID, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("status <> ?", model.ProductStatusDraft).
		Preload("Attributes").
		First(&product, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "商品不存在", "")
	}
	return &product, nil
}

func (r *productRepo) paginate(query *gorm.DB, page, limit int) (*Page[model.Product], error) {
	var products []model.Product
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, errs.Internal(err)
	}

	page, limit = NormalizePage(page, limit)
	// id 作为第二排序键，created_at 相同时分页结果仍然稳定
	err := query.Order("created_at DESC, id DESC").Scopes(Paginate(page, limit)).Find(&products).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return NewPage(products, total, page, limit), nil
}
