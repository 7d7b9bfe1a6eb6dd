package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cast"
	"gorm.io/datatypes"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/errs"
)

func setupSettingTestDB(t *testing.T) SettingRepository[model.Workflow] {
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	return NewSettingRepository[model.Workflow](db, "工作流")
}

func TestWorkflowStepsRoundTrip(t *testing.T) {
	repo := setupSettingTestDB(t)
	ctx := context.Background()

	steps := []map[string]interface{}{
		{"type": "validate", "order": 1},
		{"type": "notify", "order": 2, "channel": "email"},
	}
	raw, err := json.Marshal(steps)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	wf := &model.Workflow{
		TenantOwned: model.TenantOwned{TenantID: 1},
		Name:        "下单流程",
		Steps:       datatypes.JSON(raw),
		Config:      datatypes.JSONMap{"timeout": float64(30)},
		IsActive:    true,
	}
	if err := repo.Create(ctx, wf); err != nil {
		t.Fatalf("创建工作流失败: %v", err)
	}

	got, err := repo.GetByID(ctx, 1, wf.ID)
	if err != nil {
		t.Fatalf("读取工作流失败: %v", err)
	}

	var gotSteps []map[string]interface{}
	if err := json.Unmarshal(got.Steps, &gotSteps); err != nil {
		t.Fatalf("steps 反序列化失败: %v", err)
	}
	if len(gotSteps) != 2 || gotSteps[1]["channel"] != "email" {
		t.Fatalf("steps 内容不对: %+v", gotSteps)
	}
	// JSONMap 读回时数字是 json.Number，统一 cast 后比较
	if cast.ToInt(got.Config["timeout"]) != 30 {
		t.Fatalf("config 内容不对: %+v", got.Config)
	}
}

func TestPaymentGatewayInactiveExcluded(t *testing.T) {
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	repo := NewSettingRepository[model.PaymentGateway](db, "支付网关")
	ctx := context.Background()

	// 创建即停用的网关必须存为 false，不能被列为可用
	paused := &model.PaymentGateway{
		TenantOwned: model.TenantOwned{TenantID: 1},
		Name:        "暂停的网关",
		Provider:    "mock",
		IsActive:    false,
	}
	if err := repo.Create(ctx, paused); err != nil {
		t.Fatalf("创建支付网关失败: %v", err)
	}

	got, err := repo.GetByID(ctx, 1, paused.ID)
	if err != nil {
		t.Fatalf("读取支付网关失败: %v", err)
	}
	if got.IsActive {
		t.Fatal("停用状态未落库")
	}

	active, err := repo.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("查询启用网关失败: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("停用网关不应出现在启用列表: %+v", active)
	}
}

func TestWorkflowListActive(t *testing.T) {
	repo := setupSettingTestDB(t)
	ctx := context.Background()

	seeds := []*model.Workflow{
		{TenantOwned: model.TenantOwned{TenantID: 1}, Name: "启用的", IsActive: true},
		{TenantOwned: model.TenantOwned{TenantID: 1}, Name: "停用的", IsActive: false},
		{TenantOwned: model.TenantOwned{TenantID: 2}, Name: "别人的", IsActive: true},
	}
	for _, wf := range seeds {
		if err := repo.Create(ctx, wf); err != nil {
			t.Fatalf("创建工作流失败: %v", err)
		}
	}

	active, err := repo.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("查询启用工作流失败: %v", err)
	}
	if len(active) != 1 || active[0].Name != "启用的" {
		t.Fatalf("启用工作流筛选结果不对: %+v", active)
	}
}

func TestWorkflowTenantScopedUpdateDelete(t *testing.T) {
	repo := setupSettingTestDB(t)
	ctx := context.Background()

	wf := &model.Workflow{TenantOwned: model.TenantOwned{TenantID: 1}, Name: "原名", IsActive: true}
	if err := repo.Create(ctx, wf); err != nil {
		t.Fatalf("创建工作流失败: %v", err)
	}

	// 跨租户更新 / 删除都应 404
	if err := repo.UpdateFields(ctx, 2, wf.ID, map[string]interface{}{"name": "改名"}); !errs.IsNotFound(err) {
		t.Fatalf("跨租户更新应返回 404，实际: %v", err)
	}
	if err := repo.Delete(ctx, 2, wf.ID); !errs.IsNotFound(err) {
		t.Fatalf("跨租户删除应返回 404，实际: %v", err)
	}

	if err := repo.UpdateFields(ctx, 1, wf.ID, map[string]interface{}{"is_active": false}); err != nil {
		t.Fatalf("本租户更新失败: %v", err)
	}
	got, err := repo.GetByID(ctx, 1, wf.ID)
	if err != nil {
		t.Fatalf("读取工作流失败: %v", err)
	}
	if got.IsActive {
		t.Fatal("更新未生效")
	}
}
