package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// TenantRepository 租户目录
// GetActiveBySlug / GetActiveByHost 只解析 active 租户，挂起/删除一律返回 404（fail closed）
type TenantRepository interface {
	Create(ctx context.Context, tenant *model.Tenant) error
	GetByID(ctx context.Context, id int64) (*model.Tenant, error)
	GetActiveBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	GetActiveByHost(ctx context.Context, host string) (*model.Tenant, error)
	List(ctx context.Context, filter TenantFilter) (*Page[model.Tenant], error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// TenantFilter 租户列表过滤条件
type TenantFilter struct {
	Status  string
	Plan    string
	Keyword string
	Page    int
	Limit   int
}

// ==================== 仓储实现 ====================

type tenantRepo struct {
	db *gorm.DB
}

// NewTenantRepository 创建租户仓储
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *model.Tenant) error {
	// 唯一性靠 slug/domain/subdomain 的唯一索引兜底，冲突翻译为 409
	err := r.db.WithContext(ctx).Create(tenant).Error
	return errs.FromDB(err, "租户不存在", "slug 或域名已被占用")
}

func (r *tenantRepo) GetByID(ctx context.Context, id int64) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).First(&tenant, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "租户不存在", "")
	}
	return &tenant, nil
}

func (r *tenantRepo) GetActiveBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, model.TenantStatusActive).
		First(&tenant).Error
	if err != nil {
		return nil, errs.FromDB(err, "租户不存在", "")
	}
	return &tenant, nil
}

func (r *tenantRepo) GetActiveByHost(ctx context.Context, host string) (*model.Tenant, error) {
	// 去掉端口
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	// 1. 精确匹配自定义域名
	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("domain = ? AND status = ?", host, model.TenantStatusActive).
		First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Internal(err)
	}

	// 2. 回退：host 首段作为子域名匹配
	label, _, found := strings.Cut(host, ".")
	if !found || label == "" {
		return nil, errs.NotFound("租户不存在")
	}
	err = r.db.WithContext(ctx).
		Where("subdomain = ? AND status = ?", label, model.TenantStatusActive).
		First(&tenant).Error
	if err != nil {
		return nil, errs.FromDB(err, "租户不存在", "")
	}
	return &tenant, nil
}

func (r *tenantRepo) List(ctx context.Context, filter TenantFilter) (*Page[model.Tenant], error) {
	var tenants []model.Tenant
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Tenant{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Plan != "" {
		query = query.Where("plan = ?", filter.Plan)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ? OR slug LIKE ?", "%"+filter.Keyword+"%", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, errs.Internal(err)
	}

	page, limit := NormalizePage(filter.Page, filter.Limit)
	err := query.Order("created_at DESC, id DESC").Scopes(Paginate(page, limit)).Find(&tenants).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return NewPage(tenants, total, page, limit), nil
}

func (r *tenantRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Tenant{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return errs.FromDB(result.Error, "租户不存在", "slug 或域名已被占用")
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("租户不存在")
	}
	return nil
}

// Delete 硬删除租户并级联清理所属数据（单事务）
func (r *tenantRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant model.Tenant
		if err := tx.First(&tenant, id).Error; err != nil {
			return errs.FromDB(err, "租户不存在", "")
		}

		scoped := TenantScope(id)

		// 先清理子表（订单明细、商品属性按父表外键）
		if err := tx.Unscoped().
			Where("order_id IN (?)", tx.Model(&model.Order{}).Scopes(scoped).Select("id")).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("product_id IN (?)", tx.Model(&model.Product{}).Scopes(scoped).Select("id")).
			Delete(&model.ProductAttribute{}).Error; err != nil {
			return err
		}

		owned := []interface{}{
			&model.Order{}, &model.Product{}, &model.ProductType{},
			&model.Workflow{}, &model.DeliveryMethod{}, &model.PaymentGateway{},
			&model.Integration{}, &model.TenantPlugin{},
		}
		for _, m := range owned {
			if err := tx.Unscoped().Scopes(scoped).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Tenant{}, id).Error
	})
}
