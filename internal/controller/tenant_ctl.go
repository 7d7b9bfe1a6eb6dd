package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/service"
)

type TenantController struct {
	tenantSvc *service.TenantService
	logger    *zap.SugaredLogger
}

func NewTenantController(tenantSvc *service.TenantService, logger *zap.SugaredLogger) *TenantController {
	return &TenantController{tenantSvc: tenantSvc, logger: logger}
}

// Create 创建租户
// @Summary 创建租户
// @Description slug/域名唯一，冲突返回 409
// @Tags Tenant (租户管理)
// @Accept json
// @Produce json
// @Param body body dto.TenantCreateReq true "租户信息"
// @Success 201 {object} model.Tenant "新租户"
// @Failure 409 {object} map[string]string "slug 或域名已存在"
// @Router /api/admin/tenants [post]
func (c *TenantController) Create(ctx *gin.Context) {
	var req dto.TenantCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	tenant, err := c.tenantSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, tenant)
}

// List 租户列表
// @Summary 租户列表
// @Description 分页查询，支持按状态、套餐、关键词筛选
// @Tags Tenant (租户管理)
// @Produce json
// @Param status query string false "状态筛选"
// @Param plan query string false "套餐筛选"
// @Param keyword query string false "名称/slug 关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.Tenant] "租户分页"
// @Router /api/admin/tenants [get]
func (c *TenantController) List(ctx *gin.Context) {
	var req dto.TenantListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	page, err := c.tenantSvc.List(ctx.Request.Context(), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// Get 租户详情
// @Summary 租户详情
// @Tags Tenant (租户管理)
// @Produce json
// @Param id path int true "租户ID"
// @Success 200 {object} model.Tenant "租户"
// @Failure 404 {object} map[string]string "租户不存在"
// @Router /api/admin/tenants/{id} [get]
func (c *TenantController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tenant, err := c.tenantSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, tenant)
}

// Update 更新租户
// @Summary 更新租户
// @Description 部分更新，slug 不可变更
// @Tags Tenant (租户管理)
// @Accept json
// @Produce json
// @Param id path int true "租户ID"
// @Param body body dto.TenantUpdateReq true "更新字段"
// @Success 200 {object} model.Tenant "更新后的租户"
// @Router /api/admin/tenants/{id} [put]
func (c *TenantController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.TenantUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	tenant, err := c.tenantSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, tenant)
}

// Delete 删除租户
// @Summary 删除租户
// @Description 硬删除租户及其全部业务数据，不可恢复
// @Tags Tenant (租户管理)
// @Produce json
// @Param id path int true "租户ID"
// @Success 200 {object} map[string]string "删除成功"
// @Router /api/admin/tenants/{id} [delete]
func (c *TenantController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.tenantSvc.Delete(ctx.Request.Context(), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "租户已删除")
}
