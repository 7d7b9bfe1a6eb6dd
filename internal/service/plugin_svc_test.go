package service

import (
	"context"
	"testing"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/errs"
	"shophub_v1_202608/pkg/logger"
)

func setupPluginService(t *testing.T) *PluginService {
	t.Helper()
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	repo := repository.NewPluginRepository(db)
	ctx := context.Background()

	catalog := []model.Plugin{
		{Slug: "discount", Name: "折扣", Status: model.PluginStatusPublished},
		{Slug: "webhook", Name: "Webhook 通知", Status: model.PluginStatusPublished},
		{Slug: "legacy", Name: "旧插件", Status: model.PluginStatusDisabled},
	}
	for i := range catalog {
		if err := repo.UpsertCatalog(ctx, &catalog[i]); err != nil {
			t.Fatalf("插件入目录失败: %v", err)
		}
	}
	return NewPluginService(repo, logger.NewNop())
}

func TestPluginInstall(t *testing.T) {
	svc := setupPluginService(t)
	ctx := context.Background()

	first, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "discount"})
	if err != nil {
		t.Fatalf("安装插件失败: %v", err)
	}
	if first.Position != 1 || !first.Enabled {
		t.Fatalf("首个插件安装状态错误: position=%d enabled=%v", first.Position, first.Enabled)
	}

	// 第二个插件排在后面
	second, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "webhook"})
	if err != nil {
		t.Fatalf("安装插件失败: %v", err)
	}
	if second.Position != 2 {
		t.Fatalf("第二个插件 position 应为 2: %d", second.Position)
	}

	// 重复安装撞唯一键
	if _, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "discount"}); !errs.IsConflict(err) {
		t.Fatalf("重复安装应返回 409: %v", err)
	}
	// 其他租户位置独立
	other, err := svc.Install(ctx, 2, dto.PluginInstallReq{Slug: "discount"})
	if err != nil {
		t.Fatalf("其他租户安装失败: %v", err)
	}
	if other.Position != 1 {
		t.Fatalf("其他租户 position 应从 1 开始: %d", other.Position)
	}
}

func TestPluginInstallDisabled(t *testing.T) {
	svc := setupPluginService(t)
	ctx := context.Background()

	if _, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "legacy"}); !errs.IsConflict(err) {
		t.Fatalf("下架插件安装应返回 409: %v", err)
	}
	if _, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "nope"}); !errs.IsNotFound(err) {
		t.Fatalf("未知插件安装应返回 404: %v", err)
	}
}

func TestPluginUpdateAndUninstall(t *testing.T) {
	svc := setupPluginService(t)
	ctx := context.Background()

	if _, err := svc.Install(ctx, 1, dto.PluginInstallReq{Slug: "discount"}); err != nil {
		t.Fatalf("安装插件失败: %v", err)
	}

	off := false
	if err := svc.UpdateInstall(ctx, 1, "discount", dto.PluginUpdateReq{Enabled: &off}); err != nil {
		t.Fatalf("停用插件失败: %v", err)
	}
	installed, err := svc.ListInstalled(ctx, 1)
	if err != nil {
		t.Fatalf("查询已安装插件失败: %v", err)
	}
	if len(installed) != 1 || installed[0].Enabled {
		t.Fatalf("插件应处于停用状态: %+v", installed)
	}

	bad := 0
	if err := svc.UpdateInstall(ctx, 1, "discount", dto.PluginUpdateReq{Position: &bad}); err == nil {
		t.Fatalf("position 为 0 应校验失败")
	}

	if err := svc.Uninstall(ctx, 1, "discount"); err != nil {
		t.Fatalf("卸载插件失败: %v", err)
	}
	installed, err = svc.ListInstalled(ctx, 1)
	if err != nil {
		t.Fatalf("查询已安装插件失败: %v", err)
	}
	if len(installed) != 0 {
		t.Fatalf("卸载后不应有安装记录: %d", len(installed))
	}
}
