package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
)

// ==================== Manifest 载入 ====================

// Manifest 插件清单文件（PLUGIN_DIR/*.json）
type Manifest struct {
	Slug    string          `json:"slug"`
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Status  string          `json:"status"`
	Hooks   []string        `json:"hooks"`
	Config  json.RawMessage `json:"config_schema,omitempty"`
}

// LoadManifests 启动时把 PLUGIN_DIR 下的清单 upsert 到插件目录表
// 目录不存在时不报错（插件目录是可选的）；单个清单损坏只告警不中断
func LoadManifests(ctx context.Context, dir string, repo repository.PluginRepository, logger *zap.SugaredLogger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugw("插件目录不存在，跳过载入", "dir", dir)
			return nil
		}
		return err
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warnw("读取插件清单失败", "path", path, "error", err)
			continue
		}

		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil || m.Slug == "" {
			logger.Warnw("插件清单格式错误", "path", path, "error", err)
			continue
		}

		status := m.Status
		if status == "" {
			status = model.PluginStatusPublished
		}

		p := &model.Plugin{
			Slug:     m.Slug,
			Name:     m.Name,
			Version:  m.Version,
			Status:   status,
			Manifest: datatypes.JSON(data),
		}
		if err := repo.UpsertCatalog(ctx, p); err != nil {
			logger.Errorw("插件目录写入失败", "slug", m.Slug, "error", err)
			continue
		}
		loaded++
	}

	logger.Infow("插件清单载入完成", "dir", dir, "loaded", loaded)
	return nil
}

// SeedBuiltins 把内置插件写入目录表（无清单文件时也可安装）
func SeedBuiltins(ctx context.Context, registry *Registry, repo repository.PluginRepository, logger *zap.SugaredLogger) {
	for _, slug := range registry.Slugs() {
		impl, _ := registry.Get(slug)
		hooks := make([]string, 0, len(impl.Hooks()))
		for h := range impl.Hooks() {
			hooks = append(hooks, string(h))
		}
		manifest, _ := json.Marshal(map[string]interface{}{
			"slug": slug, "builtin": true, "hooks": hooks,
		})

		p := &model.Plugin{
			Slug:     slug,
			Name:     slug,
			Version:  "builtin",
			Status:   model.PluginStatusPublished,
			Manifest: datatypes.JSON(manifest),
		}
		if err := repo.UpsertCatalog(ctx, p); err != nil {
			logger.Errorw("内置插件注册失败", "slug", slug, "error", err)
		}
	}
}
