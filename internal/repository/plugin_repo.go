package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// PluginRepository 插件目录（全局表）+ 租户安装记录
type PluginRepository interface {
	// 目录
	UpsertCatalog(ctx context.Context, plugin *model.Plugin) error
	GetBySlug(ctx context.Context, slug string) (*model.Plugin, error)
	ListCatalog(ctx context.Context, page, limit int) (*Page[model.Plugin], error)

	// 租户安装
	Install(ctx context.Context, install *model.TenantPlugin) error
	Uninstall(ctx context.Context, tenantID, pluginID int64) error
	UpdateInstall(ctx context.Context, tenantID, pluginID int64, fields map[string]interface{}) error
	ListInstalled(ctx context.Context, tenantID int64) ([]model.TenantPlugin, error)
	// ListEnabled 返回启用的安装记录（预加载插件，按 position 升序 = 安装顺序）
	ListEnabled(ctx context.Context, tenantID int64) ([]model.TenantPlugin, error)
}

// ==================== 仓储实现 ====================

type pluginRepo struct {
	db *gorm.DB
}

// NewPluginRepository 创建插件仓储
func NewPluginRepository(db *gorm.DB) PluginRepository {
	return &pluginRepo{db: db}
}

func (r *pluginRepo) UpsertCatalog(ctx context.Context, plugin *model.Plugin) error {
	// 按 slug 幂等写入（启动时从 PLUGIN_DIR 重复载入）
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "version", "status", "manifest", "updated_at"}),
	}).Create(plugin).Error
}

func (r *pluginRepo) GetBySlug(ctx context.Context, slug string) (*model.Plugin, error) {
	var plugin model.Plugin
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&plugin).Error
	if err != nil {
		return nil, errs.FromDB(err, "插件不存在", "")
	}
	return &plugin, nil
}

func (r *pluginRepo) ListCatalog(ctx context.Context, page, limit int) (*Page[model.Plugin], error) {
	var plugins []model.Plugin
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Plugin{})
	if err := query.Count(&total).Error; err != nil {
		return nil, errs.Internal(err)
	}

	page, limit = NormalizePage(page, limit)
	err := query.Order("slug ASC").Scopes(Paginate(page, limit)).Find(&plugins).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return NewPage(plugins, total, page, limit), nil
}

func (r *pluginRepo) Install(ctx context.Context, install *model.TenantPlugin) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// position 取当前最大值+1，保证按安装顺序调用
		var maxPos struct{ Max int }
		if err := tx.Model(&model.TenantPlugin{}).
			Scopes(TenantScope(install.TenantID)).
			Select("COALESCE(MAX(position), 0) AS max").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		install.Position = maxPos.Max + 1
		return tx.Create(install).Error
	})
	return errs.FromDB(err, "插件不存在", "插件已安装")
}

func (r *pluginRepo) Uninstall(ctx context.Context, tenantID, pluginID int64) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Scopes(TenantScope(tenantID)).
		Where("plugin_id = ?", pluginID).
		Delete(&model.TenantPlugin{})
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("插件未安装")
	}
	return nil
}

func (r *pluginRepo) UpdateInstall(ctx context.Context, tenantID, pluginID int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.TenantPlugin{}).
		Scopes(TenantScope(tenantID)).
		Where("plugin_id = ?", pluginID).
		Updates(fields)
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("插件未安装")
	}
	return nil
}

func (r *pluginRepo) ListInstalled(ctx context.Context, tenantID int64) ([]model.TenantPlugin, error) {
	var installs []model.TenantPlugin
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Preload("Plugin").
		Order("position ASC").
		Find(&installs).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return installs, nil
}

func (r *pluginRepo) ListEnabled(ctx context.Context, tenantID int64) ([]model.TenantPlugin, error) {
	var installs []model.TenantPlugin
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("enabled = ?", true).
		Preload("Plugin").
		Order("position ASC").
		Find(&installs).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return installs, nil
}
