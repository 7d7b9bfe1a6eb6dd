package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/internal/service"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/logger"
	"shophub_v1_202608/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func setupTenantRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.OpenForTest(model.AllModels()...)
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}

	zlog := logger.NewNop()
	ctl := NewTenantController(service.NewTenantService(repository.NewTenantRepository(db), utils.NewTTLCache(), zlog), zlog)

	r := gin.New()
	tenants := r.Group("/api/admin/tenants")
	{
		tenants.POST("", ctl.Create)
		tenants.GET("", ctl.List)
		tenants.GET("/:id", ctl.Get)
		tenants.PUT("/:id", ctl.Update)
		tenants.DELETE("/:id", ctl.Delete)
	}
	return r
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 参数验证测试 ====================

func TestCreateTenant_InvalidParams(t *testing.T) {
	router := setupTenantRouter(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "空请求体",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "缺少 slug",
			body:       map[string]interface{}{"name": "My Shop"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "slug 含非法字符",
			body:       map[string]interface{}{"name": "My Shop", "slug": "My_Shop!"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "合法请求",
			body:       map[string]interface{}{"name": "My Shop", "slug": "my-shop"},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/api/admin/tenants", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTenantLifecycle(t *testing.T) {
	router := setupTenantRouter(t)

	w := performRequest(router, "POST", "/api/admin/tenants", map[string]interface{}{
		"name": "My Shop",
		"slug": "my-shop",
		"plan": "pro",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)

	var tenant model.Tenant
	raw, _ := json.Marshal(created.Data)
	assert.NoError(t, json.Unmarshal(raw, &tenant))
	assert.Equal(t, model.TenantStatusActive, tenant.Status)

	// slug 冲突，错误体携带 statusCode
	w = performRequest(router, "POST", "/api/admin/tenants", map[string]interface{}{
		"name": "Another",
		"slug": "my-shop",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.False(t, conflict.Success)
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)

	// 更新状态
	w = performRequest(router, "PUT", "/api/admin/tenants/1", map[string]interface{}{
		"status": "suspended",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 非法状态值
	w = performRequest(router, "PUT", "/api/admin/tenants/1", map[string]interface{}{
		"status": "frozen",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 删除后查不到
	w = performRequest(router, "DELETE", "/api/admin/tenants/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, "GET", "/api/admin/tenants/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTenant_InvalidID(t *testing.T) {
	router := setupTenantRouter(t)

	w := performRequest(router, "GET", "/api/admin/tenants/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performRequest(router, "GET", "/api/admin/tenants/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
