package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 插件管理服务 ====================

type PluginService struct {
	plugins repository.PluginRepository
	logger  *zap.SugaredLogger
}

// NewPluginService 工厂方法
func NewPluginService(plugins repository.PluginRepository, logger *zap.SugaredLogger) *PluginService {
	return &PluginService{plugins: plugins, logger: logger}
}

// ListCatalog 全局插件目录
func (s *PluginService) ListCatalog(ctx context.Context, page, limit int) (*repository.Page[model.Plugin], error) {
	return s.plugins.ListCatalog(ctx, page, limit)
}

// ListInstalled 租户已安装插件
func (s *PluginService) ListInstalled(ctx context.Context, tenantID int64) ([]model.TenantPlugin, error) {
	return s.plugins.ListInstalled(ctx, tenantID)
}

// Install 给租户安装插件，position 自动取当前最大值 +1（决定 hook 执行顺序）
func (s *PluginService) Install(ctx context.Context, tenantID int64, req dto.PluginInstallReq) (*model.TenantPlugin, error) {
	// 1. 目录里必须存在且处于上架状态
	catalog, err := s.plugins.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if catalog.Status != model.PluginStatusPublished {
		return nil, errs.Conflict("插件已下架，无法安装")
	}

	// 2. 落库（重复安装撞唯一键 -> 409）
	install := &model.TenantPlugin{
		TenantID: tenantID,
		PluginID: catalog.ID,
		Config:   datatypes.JSONMap(req.Config),
		Enabled:  true,
	}
	if err := s.plugins.Install(ctx, install); err != nil {
		return nil, err
	}

	s.logger.Infow("插件已安装", "tenant_id", tenantID, "plugin", catalog.Slug)
	install.Plugin = catalog
	return install, nil
}

// Uninstall 卸载插件
func (s *PluginService) Uninstall(ctx context.Context, tenantID int64, slug string) error {
	catalog, err := s.plugins.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.plugins.Uninstall(ctx, tenantID, catalog.ID); err != nil {
		return err
	}
	s.logger.Infow("插件已卸载", "tenant_id", tenantID, "plugin", slug)
	return nil
}

// UpdateInstall 更新安装配置 / 启停 / 调整顺序
func (s *PluginService) UpdateInstall(ctx context.Context, tenantID int64, slug string, req dto.PluginUpdateReq) error {
	catalog, err := s.plugins.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Enabled != nil {
		fields["enabled"] = *req.Enabled
	}
	if req.Position != nil {
		if *req.Position < 1 {
			return errs.Validation("position 必须大于 0")
		}
		fields["position"] = *req.Position
	}
	if req.Config != nil {
		fields["config"] = datatypes.JSONMap(req.Config)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.plugins.UpdateInstall(ctx, tenantID, catalog.ID, fields)
}
