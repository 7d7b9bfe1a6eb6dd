package controller

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

type ProductController struct {
	productSvc *service.ProductService
	storageSvc *service.StorageService
	logger     *zap.SugaredLogger
}

func NewProductController(productSvc *service.ProductService, storageSvc *service.StorageService, logger *zap.SugaredLogger) *ProductController {
	return &ProductController{productSvc: productSvc, storageSvc: storageSvc, logger: logger}
}

// Create 创建商品
// @Summary 创建商品
// @Description 商品归属当前租户，product_type_id 必须是本租户的商品类型
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.ProductCreateReq true "商品信息"
// @Success 201 {object} model.Product "新商品"
// @Router /api/{tenant_slug}/admin/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, product)
}

// List 商品列表
// @Summary 商品列表
// @Description 分页查询，支持按状态、类型、标题关键词筛选
// @Tags Product (商品管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param status query string false "状态筛选"
// @Param product_type_id query int false "商品类型筛选"
// @Param keyword query string false "标题关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.Product] "商品分页"
// @Router /api/{tenant_slug}/admin/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	var req dto.ProductListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	page, err := c.productSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// Get 商品详情
// @Summary 商品详情
// @Tags Product (商品管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品ID"
// @Success 200 {object} model.Product "商品（含属性）"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/{tenant_slug}/admin/products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	product, err := c.productSvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, product)
}

// Update 更新商品
// @Summary 更新商品
// @Description 部分更新；提供 attributes 时整体替换属性
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品ID"
// @Param body body dto.ProductUpdateReq true "更新字段"
// @Success 200 {object} model.Product "更新后的商品"
// @Router /api/{tenant_slug}/admin/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProductUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, product)
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Product (商品管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string "删除成功"
// @Router /api/{tenant_slug}/admin/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.productSvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "商品已删除")
}

// UploadImage 上传商品图片
// @Summary 上传商品图片
// @Description multipart 上传，成功后 URL 追加到商品 images 列表
// @Tags Product (商品管理)
// @Accept multipart/form-data
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} model.Product "更新后的商品"
// @Failure 400 {object} map[string]string "文件超限或类型不支持"
// @Router /api/{tenant_slug}/admin/products/{id}/images [post]
func (c *ProductController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		BadRequest(ctx, fmt.Errorf("缺少 file 字段: %w", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}

	tenantID := middleware.GetTenantID(ctx)
	url, err := c.storageSvc.UploadImage(ctx.Request.Context(), tenantID, data, fileHeader.Filename)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}

	product, err := c.productSvc.AppendImage(ctx.Request.Context(), tenantID, id, url)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, product)
}
