package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/internal/service"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/logger"
	"shophub_v1_202608/pkg/utils"
)

// ==================== 测试辅助 ====================

// setupStorefrontRouter 真实仓储/服务/中间件的店面路由
func setupStorefrontRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.TenantService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}

	zlog := logger.NewNop()
	cache := utils.NewTTLCache()
	tenantRepo := repository.NewTenantRepository(db)
	tenantSvc := service.NewTenantService(tenantRepo, cache, zlog)
	productSvc := service.NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductTypeRepository(db),
	)
	ctl := NewStorefrontController(productSvc, zlog)

	r := gin.New()
	tenant := r.Group("/api/:tenant_slug", middleware.ResolveTenant(tenantRepo, cache, zlog))
	storefront := tenant.Group("/storefront")
	{
		storefront.GET("/products", ctl.ListProducts)
		storefront.GET("/products/:id", ctl.GetProduct)
	}
	return r, db, tenantSvc
}

func seedStorefrontData(t *testing.T, db *gorm.DB) (activeID, draftID int64) {
	t.Helper()
	tenants := []model.Tenant{
		{Name: "My Shop", Slug: "myshop", Status: model.TenantStatusActive},
		{Name: "Closed", Slug: "closed", Status: model.TenantStatusSuspended},
	}
	for i := range tenants {
		if err := db.Create(&tenants[i]).Error; err != nil {
			t.Fatalf("创建租户失败: %v", err)
		}
	}

	pt := &model.ProductType{TenantID: tenants[0].ID, Name: "默认", Slug: "default"}
	if err := db.Create(pt).Error; err != nil {
		t.Fatalf("创建商品类型失败: %v", err)
	}
	products := []model.Product{
		{TenantOwned: model.TenantOwned{TenantID: tenants[0].ID}, ProductTypeID: pt.ID, Title: "在售商品", PriceAmount: 1000, Status: model.ProductStatusActive},
		{TenantOwned: model.TenantOwned{TenantID: tenants[0].ID}, ProductTypeID: pt.ID, Title: "草稿商品", PriceAmount: 2000, Status: model.ProductStatusDraft},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}
	return products[0].ID, products[1].ID
}

func doGet(r *gin.Engine, path string) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// ==================== 店面路由测试 ====================

func TestStorefrontUnknownTenant(t *testing.T) {
	r, db, _ := setupStorefrontRouter(t)
	seedStorefrontData(t, db)

	w, resp := doGet(r, "/api/nope/storefront/products")
	if w.Code != http.StatusNotFound {
		t.Fatalf("未知租户应返回 404，实际 %d", w.Code)
	}
	if resp.Success {
		t.Fatalf("失败响应 success 应为 false")
	}

	// 停用租户与不存在的租户表现一致
	w2, _ := doGet(r, "/api/closed/storefront/products")
	if w2.Code != http.StatusNotFound {
		t.Fatalf("停用租户应返回 404，实际 %d", w2.Code)
	}
}

func TestStorefrontListExcludesDraft(t *testing.T) {
	r, db, _ := setupStorefrontRouter(t)
	seedStorefrontData(t, db)

	w, resp := doGet(r, "/api/myshop/storefront/products")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d body=%s", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Fatalf("响应应成功: %+v", resp)
	}

	var page repository.Page[model.Product]
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("解析分页数据失败: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("店面应只看到 1 个在售商品: total=%d", page.Total)
	}
	if page.Data[0].Title != "在售商品" {
		t.Fatalf("返回了错误的商品: %s", page.Data[0].Title)
	}
}

func TestStorefrontSuspendInvalidatesCache(t *testing.T) {
	r, db, tenantSvc := setupStorefrontRouter(t)
	seedStorefrontData(t, db)

	// 先解析一次，把租户放进缓存
	w, _ := doGet(r, "/api/myshop/storefront/products")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d", w.Code)
	}

	var tenant model.Tenant
	if err := db.Where("slug = ?", "myshop").First(&tenant).Error; err != nil {
		t.Fatalf("读取租户失败: %v", err)
	}
	suspended := model.TenantStatusSuspended
	if _, err := tenantSvc.Update(context.Background(), tenant.ID, dto.TenantUpdateReq{Status: &suspended}); err != nil {
		t.Fatalf("停用租户失败: %v", err)
	}

	// 停用立即生效，不等缓存 TTL 过期
	w2, _ := doGet(r, "/api/myshop/storefront/products")
	if w2.Code != http.StatusNotFound {
		t.Fatalf("停用后应立即 404，实际 %d", w2.Code)
	}
}

func TestStorefrontGetDraftNotFound(t *testing.T) {
	r, db, _ := setupStorefrontRouter(t)
	activeID, draftID := seedStorefrontData(t, db)

	w, _ := doGet(r, "/api/myshop/storefront/products/"+strconv.FormatInt(activeID, 10))
	if w.Code != http.StatusOK {
		t.Fatalf("在售商品详情应可见: %d", w.Code)
	}

	w2, _ := doGet(r, "/api/myshop/storefront/products/"+strconv.FormatInt(draftID, 10))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("草稿商品应视为不存在，实际 %d", w2.Code)
	}
}
