package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

type OrderController struct {
	orderSvc   *service.OrderService
	paymentSvc *service.PaymentService
	logger     *zap.SugaredLogger
}

func NewOrderController(orderSvc *service.OrderService, paymentSvc *service.PaymentService, logger *zap.SugaredLogger) *OrderController {
	return &OrderController{orderSvc: orderSvc, paymentSvc: paymentSvc, logger: logger}
}

// Create 创建订单
// @Summary 创建订单
// @Description 单价由服务端快照，before_order_create 插件链可拦截
// @Tags Order (订单管理)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.OrderCreateReq true "订单信息"
// @Success 201 {object} model.Order "新订单"
// @Failure 400 {object} map[string]string "商品不存在或插件拒绝"
// @Router /api/{tenant_slug}/admin/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.OrderCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	order, err := c.orderSvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, order)
}

// List 订单列表
// @Summary 订单列表
// @Tags Order (订单管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param status query string false "订单状态筛选"
// @Param payment_status query string false "支付状态筛选"
// @Param user_id query int false "下单用户筛选"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.Order] "订单分页"
// @Router /api/{tenant_slug}/admin/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	var req dto.OrderListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	page, err := c.orderSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// Get 订单详情
// @Summary 订单详情
// @Tags Order (订单管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "订单ID"
// @Success 200 {object} model.Order "订单（含明细）"
// @Failure 404 {object} map[string]string "订单不存在"
// @Router /api/{tenant_slug}/admin/orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orderSvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, order)
}

// Update 更新订单
// @Summary 更新订单
// @Description 已支付订单不能取消
// @Tags Order (订单管理)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "订单ID"
// @Param body body dto.OrderUpdateReq true "更新字段"
// @Success 200 {object} model.Order "更新后的订单"
// @Failure 409 {object} map[string]string "状态冲突"
// @Router /api/{tenant_slug}/admin/orders/{id} [put]
func (c *OrderController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.OrderUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	order, err := c.orderSvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, order)
}

// Delete 删除订单
// @Summary 删除订单
// @Tags Order (订单管理)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "订单ID"
// @Success 200 {object} map[string]string "删除成功"
// @Router /api/{tenant_slug}/admin/orders/{id} [delete]
func (c *OrderController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.orderSvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "订单已删除")
}

// ProcessPayment 支付订单
// @Summary 支付订单
// @Description before_payment_process 插件链校验后走网关扣款，结果触发 after hook
// @Tags Order (订单管理)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "订单ID"
// @Param body body dto.PaymentReq true "支付方式"
// @Success 200 {object} dto.PaymentResp "支付结果"
// @Failure 409 {object} map[string]string "订单已支付或已取消"
// @Router /api/{tenant_slug}/admin/orders/{id}/payment [post]
func (c *OrderController) ProcessPayment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.PaymentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	resp, err := c.paymentSvc.ProcessPayment(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, resp)
}
