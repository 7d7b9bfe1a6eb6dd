package service

import (
	"context"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
	"shophub_v1_202608/pkg/utils"
)

// ==================== 租户目录服务 ====================

// slug 只允许小写字母数字和连字符，作为 URL 路径段使用
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type TenantService struct {
	tenants repository.TenantRepository
	cache   *utils.TTLCache
	logger  *zap.SugaredLogger
}

// NewTenantService 工厂方法
func NewTenantService(tenants repository.TenantRepository, cache *utils.TTLCache, logger *zap.SugaredLogger) *TenantService {
	return &TenantService{tenants: tenants, cache: cache, logger: logger}
}

// Create 创建租户
// slug/domain/subdomain 的唯一性靠数据库约束，冲突翻译为 409
func (s *TenantService) Create(ctx context.Context, req dto.TenantCreateReq) (*model.Tenant, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, errs.Validation("slug 只能包含小写字母、数字和连字符")
	}

	plan := req.Plan
	if plan == "" {
		plan = model.TenantPlanFree
	}

	tenant := &model.Tenant{
		Name:      req.Name,
		Slug:      req.Slug,
		Domain:    req.Domain,
		Subdomain: req.Subdomain,
		Status:    model.TenantStatusActive,
		Plan:      plan,
		Settings:  datatypes.JSONMap(req.Settings),
		Branding:  datatypes.JSONMap(req.Branding),
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Infow("租户已创建", "tenant_id", tenant.ID, "slug", tenant.Slug)
	return tenant, nil
}

// Get 按 ID 获取租户
func (s *TenantService) Get(ctx context.Context, id int64) (*model.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// List 分页查询租户
func (s *TenantService) List(ctx context.Context, req dto.TenantListReq) (*repository.Page[model.Tenant], error) {
	return s.tenants.List(ctx, repository.TenantFilter{
		Status:  req.Status,
		Plan:    req.Plan,
		Keyword: req.Keyword,
		Page:    req.Page,
		Limit:   req.Limit,
	})
}

// Update 部分更新租户，slug 不可变更
func (s *TenantService) Update(ctx context.Context, id int64, req dto.TenantUpdateReq) (*model.Tenant, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Domain != nil {
		fields["domain"] = req.Domain
	}
	if req.Subdomain != nil {
		fields["subdomain"] = req.Subdomain
	}
	if req.Status != nil {
		switch *req.Status {
		case model.TenantStatusActive, model.TenantStatusSuspended, model.TenantStatusDeleted:
			fields["status"] = *req.Status
		default:
			return nil, errs.Validation("无效的租户状态")
		}
	}
	if req.Plan != nil {
		fields["plan"] = *req.Plan
	}
	if req.Settings != nil {
		fields["settings"] = datatypes.JSONMap(req.Settings)
	}
	if req.Branding != nil {
		fields["branding"] = datatypes.JSONMap(req.Branding)
	}
	if len(fields) == 0 {
		return s.tenants.GetByID(ctx, id)
	}

	if err := s.tenants.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 状态等字段变了，解析缓存立即失效
	s.cache.Delete(middleware.TenantCacheKey(tenant.Slug))
	return tenant, nil
}

// Delete 删除租户及其全部业务数据（硬删除，不可恢复）
func (s *TenantService) Delete(ctx context.Context, id int64) error {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tenants.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(middleware.TenantCacheKey(tenant.Slug))
	s.logger.Infow("租户已删除", "tenant_id", id, "slug", tenant.Slug)
	return nil
}
