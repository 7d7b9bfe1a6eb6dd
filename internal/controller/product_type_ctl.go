package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

type ProductTypeController struct {
	typeSvc *service.ProductTypeService
	logger  *zap.SugaredLogger
}

func NewProductTypeController(typeSvc *service.ProductTypeService, logger *zap.SugaredLogger) *ProductTypeController {
	return &ProductTypeController{typeSvc: typeSvc, logger: logger}
}

// Create 创建商品类型
// @Summary 创建商品类型
// @Description slug 在租户内唯一，冲突返回 409
// @Tags ProductType (商品类型)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.ProductTypeCreateReq true "商品类型"
// @Success 201 {object} model.ProductType "新商品类型"
// @Failure 409 {object} map[string]string "slug 已存在"
// @Router /api/{tenant_slug}/admin/product-types [post]
func (c *ProductTypeController) Create(ctx *gin.Context) {
	var req dto.ProductTypeCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	pt, err := c.typeSvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, pt)
}

// List 商品类型列表
// @Summary 商品类型列表
// @Tags ProductType (商品类型)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.ProductType] "商品类型分页"
// @Router /api/{tenant_slug}/admin/product-types [get]
func (c *ProductTypeController) List(ctx *gin.Context) {
	var req dto.ListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	page, err := c.typeSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// Get 商品类型详情
// @Summary 商品类型详情
// @Tags ProductType (商品类型)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品类型ID"
// @Success 200 {object} model.ProductType "商品类型"
// @Router /api/{tenant_slug}/admin/product-types/{id} [get]
func (c *ProductTypeController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	pt, err := c.typeSvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, pt)
}

// Update 更新商品类型
// @Summary 更新商品类型
// @Tags ProductType (商品类型)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品类型ID"
// @Param body body dto.ProductTypeUpdateReq true "更新字段"
// @Success 200 {object} model.ProductType "更新后的商品类型"
// @Router /api/{tenant_slug}/admin/product-types/{id} [put]
func (c *ProductTypeController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProductTypeUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	pt, err := c.typeSvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, pt)
}

// Delete 删除商品类型
// @Summary 删除商品类型
// @Tags ProductType (商品类型)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品类型ID"
// @Success 200 {object} map[string]string "删除成功"
// @Router /api/{tenant_slug}/admin/product-types/{id} [delete]
func (c *ProductTypeController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.typeSvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "商品类型已删除")
}
