package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

// ==================== 租户配置控制器 ====================
// 工作流 / 配送方式 / 支付网关 / 外部集成，路由形态一致

type SettingController struct {
	workflowSvc    *service.WorkflowService
	deliverySvc    *service.DeliveryMethodService
	gatewaySvc     *service.PaymentGatewayService
	integrationSvc *service.IntegrationService
	logger         *zap.SugaredLogger
}

func NewSettingController(
	workflowSvc *service.WorkflowService,
	deliverySvc *service.DeliveryMethodService,
	gatewaySvc *service.PaymentGatewayService,
	integrationSvc *service.IntegrationService,
	logger *zap.SugaredLogger,
) *SettingController {
	return &SettingController{
		workflowSvc:    workflowSvc,
		deliverySvc:    deliverySvc,
		gatewaySvc:     gatewaySvc,
		integrationSvc: integrationSvc,
		logger:         logger,
	}
}

func bindPage(ctx *gin.Context) (dto.ListReq, bool) {
	var req dto.ListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return req, false
	}
	return req, true
}

// ---------- Workflow ----------

// CreateWorkflow 创建工作流
// @Summary 创建工作流
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.WorkflowCreateReq true "工作流"
// @Success 201 {object} model.Workflow
// @Router /api/{tenant_slug}/admin/workflows [post]
func (c *SettingController) CreateWorkflow(ctx *gin.Context) {
	var req dto.WorkflowCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	wf, err := c.workflowSvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, wf)
}

// ListWorkflows 工作流列表
// @Summary 工作流列表
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Success 200 {object} repository.Page[model.Workflow]
// @Router /api/{tenant_slug}/admin/workflows [get]
func (c *SettingController) ListWorkflows(ctx *gin.Context) {
	req, ok := bindPage(ctx)
	if !ok {
		return
	}
	page, err := c.workflowSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// GetWorkflow 工作流详情
// @Summary 工作流详情
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "工作流ID"
// @Success 200 {object} model.Workflow
// @Router /api/{tenant_slug}/admin/workflows/{id} [get]
func (c *SettingController) GetWorkflow(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	wf, err := c.workflowSvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, wf)
}

// UpdateWorkflow 更新工作流
// @Summary 更新工作流
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "工作流ID"
// @Param body body dto.WorkflowUpdateReq true "更新字段"
// @Success 200 {object} model.Workflow
// @Router /api/{tenant_slug}/admin/workflows/{id} [put]
func (c *SettingController) UpdateWorkflow(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.WorkflowUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	wf, err := c.workflowSvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, wf)
}

// DeleteWorkflow 删除工作流
// @Summary 删除工作流
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "工作流ID"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/workflows/{id} [delete]
func (c *SettingController) DeleteWorkflow(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.workflowSvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "工作流已删除")
}

// ---------- DeliveryMethod ----------

// CreateDeliveryMethod 创建配送方式
// @Summary 创建配送方式
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.DeliveryMethodCreateReq true "配送方式"
// @Success 201 {object} model.DeliveryMethod
// @Router /api/{tenant_slug}/admin/delivery-methods [post]
func (c *SettingController) CreateDeliveryMethod(ctx *gin.Context) {
	var req dto.DeliveryMethodCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	dm, err := c.deliverySvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, dm)
}

// ListDeliveryMethods 配送方式列表
// @Summary 配送方式列表
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Success 200 {object} repository.Page[model.DeliveryMethod]
// @Router /api/{tenant_slug}/admin/delivery-methods [get]
func (c *SettingController) ListDeliveryMethods(ctx *gin.Context) {
	req, ok := bindPage(ctx)
	if !ok {
		return
	}
	page, err := c.deliverySvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// GetDeliveryMethod 配送方式详情
// @Summary 配送方式详情
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "配送方式ID"
// @Success 200 {object} model.DeliveryMethod
// @Router /api/{tenant_slug}/admin/delivery-methods/{id} [get]
func (c *SettingController) GetDeliveryMethod(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	dm, err := c.deliverySvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, dm)
}

// UpdateDeliveryMethod 更新配送方式
// @Summary 更新配送方式
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "配送方式ID"
// @Param body body dto.DeliveryMethodUpdateReq true "更新字段"
// @Success 200 {object} model.DeliveryMethod
// @Router /api/{tenant_slug}/admin/delivery-methods/{id} [put]
func (c *SettingController) UpdateDeliveryMethod(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.DeliveryMethodUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	dm, err := c.deliverySvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, dm)
}

// DeleteDeliveryMethod 删除配送方式
// @Summary 删除配送方式
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "配送方式ID"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/delivery-methods/{id} [delete]
func (c *SettingController) DeleteDeliveryMethod(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.deliverySvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "配送方式已删除")
}

// ---------- PaymentGateway ----------

// CreatePaymentGateway 创建支付网关
// @Summary 创建支付网关
// @Description credentials 只写不读，响应里不返回
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.PaymentGatewayCreateReq true "支付网关"
// @Success 201 {object} model.PaymentGateway
// @Router /api/{tenant_slug}/admin/payment-gateways [post]
func (c *SettingController) CreatePaymentGateway(ctx *gin.Context) {
	var req dto.PaymentGatewayCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	gw, err := c.gatewaySvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, gw)
}

// ListPaymentGateways 支付网关列表
// @Summary 支付网关列表
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Success 200 {object} repository.Page[model.PaymentGateway]
// @Router /api/{tenant_slug}/admin/payment-gateways [get]
func (c *SettingController) ListPaymentGateways(ctx *gin.Context) {
	req, ok := bindPage(ctx)
	if !ok {
		return
	}
	page, err := c.gatewaySvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// GetPaymentGateway 支付网关详情
// @Summary 支付网关详情
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "支付网关ID"
// @Success 200 {object} model.PaymentGateway
// @Router /api/{tenant_slug}/admin/payment-gateways/{id} [get]
func (c *SettingController) GetPaymentGateway(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	gw, err := c.gatewaySvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, gw)
}

// UpdatePaymentGateway 更新支付网关
// @Summary 更新支付网关
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "支付网关ID"
// @Param body body dto.PaymentGatewayUpdateReq true "更新字段"
// @Success 200 {object} model.PaymentGateway
// @Router /api/{tenant_slug}/admin/payment-gateways/{id} [put]
func (c *SettingController) UpdatePaymentGateway(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.PaymentGatewayUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	gw, err := c.gatewaySvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, gw)
}

// DeletePaymentGateway 删除支付网关
// @Summary 删除支付网关
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "支付网关ID"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/payment-gateways/{id} [delete]
func (c *SettingController) DeletePaymentGateway(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.gatewaySvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "支付网关已删除")
}

// ---------- Integration ----------

// CreateIntegration 创建外部集成
// @Summary 创建外部集成
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.IntegrationCreateReq true "集成配置"
// @Success 201 {object} model.Integration
// @Router /api/{tenant_slug}/admin/integrations [post]
func (c *SettingController) CreateIntegration(ctx *gin.Context) {
	var req dto.IntegrationCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	it, err := c.integrationSvc.Create(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, it)
}

// ListIntegrations 外部集成列表
// @Summary 外部集成列表
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Success 200 {object} repository.Page[model.Integration]
// @Router /api/{tenant_slug}/admin/integrations [get]
func (c *SettingController) ListIntegrations(ctx *gin.Context) {
	req, ok := bindPage(ctx)
	if !ok {
		return
	}
	page, err := c.integrationSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// GetIntegration 外部集成详情
// @Summary 外部集成详情
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "集成ID"
// @Success 200 {object} model.Integration
// @Router /api/{tenant_slug}/admin/integrations/{id} [get]
func (c *SettingController) GetIntegration(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	it, err := c.integrationSvc.Get(ctx.Request.Context(), middleware.GetTenantID(ctx), id)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, it)
}

// UpdateIntegration 更新外部集成
// @Summary 更新外部集成
// @Tags Setting (租户配置)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "集成ID"
// @Param body body dto.IntegrationUpdateReq true "更新字段"
// @Success 200 {object} model.Integration
// @Router /api/{tenant_slug}/admin/integrations/{id} [put]
func (c *SettingController) UpdateIntegration(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.IntegrationUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	it, err := c.integrationSvc.Update(ctx.Request.Context(), middleware.GetTenantID(ctx), id, req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, it)
}

// DeleteIntegration 删除外部集成
// @Summary 删除外部集成
// @Tags Setting (租户配置)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param id path int true "集成ID"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/integrations/{id} [delete]
func (c *SettingController) DeleteIntegration(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.integrationSvc.Delete(ctx.Request.Context(), middleware.GetTenantID(ctx), id); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "集成已删除")
}
