package repository

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/errs"
)

func setupProductTestDB(t *testing.T) (*gorm.DB, ProductRepository) {
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	return db, NewProductRepository(db)
}

// seedProductType 建一个商品类型供外键使用
func seedProductType(t *testing.T, db *gorm.DB, tenantID int64) *model.ProductType {
	pt := &model.ProductType{TenantID: tenantID, Name: "默认类目", Slug: fmt.Sprintf("cat-%d", tenantID)}
	if err := db.Create(pt).Error; err != nil {
		t.Fatalf("创建商品类型失败: %v", err)
	}
	return pt
}

func TestProductTenantIsolation(t *testing.T) {
	db, repo := setupProductTestDB(t)
	ctx := context.Background()

	ptA := seedProductType(t, db, 1)
	ptB := seedProductType(t, db, 2)

	pA := &model.Product{TenantOwned: model.TenantOwned{TenantID: 1}, ProductTypeID: ptA.ID, Title: "租户1的商品", Slug: "a-item", Status: model.ProductStatusActive}
	pB := &model.Product{TenantOwned: model.TenantOwned{TenantID: 2}, ProductTypeID: ptB.ID, Title: "租户2的商品", Slug: "b-item", Status: model.ProductStatusActive}
	for _, p := range []*model.Product{pA, pB} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}

	// 跨租户按 ID 读取必须 404
	if _, err := repo.GetByID(ctx, 1, pB.ID); !errs.IsNotFound(err) {
		t.Fatalf("跨租户读取应返回 404，实际: %v", err)
	}

	// 列表只含本租户数据
	page, err := repo.List(ctx, 1, ProductFilter{})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if page.Total != 1 || page.Data[0].ID != pA.ID {
		t.Fatalf("租户1列表结果不对: total=%d", page.Total)
	}

	// 跨租户更新和删除不应影响数据
	if err := repo.UpdateFields(ctx, 1, pB.ID, map[string]interface{}{"title": "篡改"}); !errs.IsNotFound(err) {
		t.Fatalf("跨租户更新应返回 404，实际: %v", err)
	}
	got, err := repo.GetByID(ctx, 2, pB.ID)
	if err != nil {
		t.Fatalf("读取租户2商品失败: %v", err)
	}
	if got.Title != "租户2的商品" {
		t.Fatalf("租户2商品被跨租户修改: %s", got.Title)
	}
}

func TestProductPagination(t *testing.T) {
	db, repo := setupProductTestDB(t)
	ctx := context.Background()

	pt := seedProductType(t, db, 1)
	for i := 0; i < 5; i++ {
		p := &model.Product{
			TenantOwned:   model.TenantOwned{TenantID: 1},
			ProductTypeID: pt.ID,
			Title:         fmt.Sprintf("商品%d", i),
			Slug:          fmt.Sprintf("item-%d", i),
			Status:        model.ProductStatusActive,
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}

	seen := map[int64]bool{}
	for pageNo := 1; pageNo <= 3; pageNo++ {
		page, err := repo.List(ctx, 1, ProductFilter{Page: pageNo, Limit: 2})
		if err != nil {
			t.Fatalf("第 %d 页查询失败: %v", pageNo, err)
		}
		if page.Total != 5 {
			t.Fatalf("总数不对: 期望 5 实际 %d", page.Total)
		}
		if page.Pages != 3 {
			t.Fatalf("总页数不对: 期望 3 实际 %d", page.Pages)
		}
		for _, p := range page.Data {
			if seen[p.ID] {
				t.Fatalf("分页出现重复数据: id=%d", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Fatalf("三页合计应覆盖 5 条，实际 %d", len(seen))
	}
}

func TestProductPublishedExcludesDraft(t *testing.T) {
	db, repo := setupProductTestDB(t)
	ctx := context.Background()

	pt := seedProductType(t, db, 1)
	draft := &model.Product{TenantOwned: model.TenantOwned{TenantID: 1}, ProductTypeID: pt.ID, Title: "草稿", Slug: "draft", Status: model.ProductStatusDraft}
	active := &model.Product{TenantOwned: model.TenantOwned{TenantID: 1}, ProductTypeID: pt.ID, Title: "在售", Slug: "active", Status: model.ProductStatusActive}
	archived := &model.Product{TenantOwned: model.TenantOwned{TenantID: 1}, ProductTypeID: pt.ID, Title: "下架", Slug: "archived", Status: model.ProductStatusArchived}
	for _, p := range []*model.Product{draft, active, archived} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}

	page, err := repo.ListPublished(ctx, 1, 1, 20)
	if err != nil {
		t.Fatalf("店面列表查询失败: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("店面列表应排除草稿: 期望 2 实际 %d", page.Total)
	}
	for _, p := range page.Data {
		if p.Status == model.ProductStatusDraft {
			t.Fatal("店面列表出现草稿商品")
		}
	}

	if _, err := repo.GetPublished(ctx, 1, draft.ID); !errs.IsNotFound(err) {
		t.Fatalf("草稿商品在店面应视为不存在，实际: %v", err)
	}
	if _, err := repo.GetPublished(ctx, 1, active.ID); err != nil {
		t.Fatalf("在售商品店面读取失败: %v", err)
	}
}

func TestProductReplaceAttributes(t *testing.T) {
	db, repo := setupProductTestDB(t)
	ctx := context.Background()

	pt := seedProductType(t, db, 1)
	p := &model.Product{
		TenantOwned:   model.TenantOwned{TenantID: 1},
		ProductTypeID: pt.ID,
		Title:         "带属性的商品",
		Slug:          "with-attrs",
		Status:        model.ProductStatusActive,
		Attributes: []model.ProductAttribute{
			{Key: "color", Value: "red", ValueType: "string"},
			{Key: "weight", Value: "3", ValueType: "number"},
		},
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 整体替换
	newAttrs := []model.ProductAttribute{{Key: "size", Value: "XL", ValueType: "string"}}
	if err := repo.ReplaceAttributes(ctx, 1, p.ID, newAttrs); err != nil {
		t.Fatalf("替换属性失败: %v", err)
	}

	got, err := repo.GetByID(ctx, 1, p.ID)
	if err != nil {
		t.Fatalf("读取商品失败: %v", err)
	}
	if len(got.Attributes) != 1 || got.Attributes[0].Key != "size" {
		t.Fatalf("属性替换结果不对: %+v", got.Attributes)
	}

	// 跨租户替换应失败
	if err := repo.ReplaceAttributes(ctx, 2, p.ID, nil); !errs.IsNotFound(err) {
		t.Fatalf("跨租户替换属性应返回 404，实际: %v", err)
	}
}
