package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

// ==================== 店面控制器 ====================
// 公开读路径，不要求认证，草稿商品不可见

type StorefrontController struct {
	productSvc *service.ProductService
	logger     *zap.SugaredLogger
}

func NewStorefrontController(productSvc *service.ProductService, logger *zap.SugaredLogger) *StorefrontController {
	return &StorefrontController{productSvc: productSvc, logger: logger}
}

// ListProducts 店面商品列表
// @Summary 店面商品列表
// @Description 只返回非草稿商品
// @Tags Storefront (店面)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.Product]
// @Router /api/{tenant_slug}/storefront/products [get]
func (c *StorefrontController) ListProducts(ctx *gin.Context) {
	var req dto.ListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	page, err := c.productSvc.ListPublished(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// GetProduct 店面商品详情
// @Summary 店面商品详情
// @Description 草稿商品视为不存在
// @Tags Storefront (店面)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "商品ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/{tenant_slug}/storefront/products/{id} [get]
func (c *StorefrontController) GetProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	product, err := c.productSvc.GetPublished(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, product)
}
