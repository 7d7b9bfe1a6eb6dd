package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

type PluginController struct {
	pluginSvc *service.PluginService
	logger    *zap.SugaredLogger
}

func NewPluginController(pluginSvc *service.PluginService, logger *zap.SugaredLogger) *PluginController {
	return &PluginController{pluginSvc: pluginSvc, logger: logger}
}

// Catalog 插件目录
// @Summary 插件目录
// @Description 全局可安装插件列表
// @Tags Plugin (插件)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} repository.Page[model.Plugin]
// @Router /api/{tenant_slug}/admin/plugins/catalog [get]
func (c *PluginController) Catalog(ctx *gin.Context) {
	var req dto.ListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	page, err := c.pluginSvc.ListCatalog(ctx.Request.Context(), req.Page, req.Limit)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, page)
}

// ListInstalled 已安装插件
// @Summary 已安装插件
// @Tags Plugin (插件)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Success 200 {array} model.TenantPlugin
// @Router /api/{tenant_slug}/admin/plugins [get]
func (c *PluginController) ListInstalled(ctx *gin.Context) {
	installs, err := c.pluginSvc.ListInstalled(ctx.Request.Context(), middleware.GetTenantID(ctx))
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, installs)
}

// Install 安装插件
// @Summary 安装插件
// @Description 重复安装返回 409，hook 执行顺序按安装顺序
// @Tags Plugin (插件)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param body body dto.PluginInstallReq true "插件与配置"
// @Success 201 {object} model.TenantPlugin
// @Failure 409 {object} map[string]string "插件已安装"
// @Router /api/{tenant_slug}/admin/plugins [post]
func (c *PluginController) Install(ctx *gin.Context) {
	var req dto.PluginInstallReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	install, err := c.pluginSvc.Install(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, install)
}

// Update 更新插件安装
// @Summary 更新插件安装
// @Description 启停 / 调整顺序 / 修改配置
// @Tags Plugin (插件)
// @Accept json
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param slug path string true "插件 slug"
// @Param body body dto.PluginUpdateReq true "更新字段"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/plugins/{slug} [put]
func (c *PluginController) Update(ctx *gin.Context) {
	var req dto.PluginUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}
	if err := c.pluginSvc.UpdateInstall(ctx.Request.Context(), middleware.GetTenantID(ctx), ctx.Param("slug"), req); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "插件已更新")
}

// Uninstall 卸载插件
// @Summary 卸载插件
// @Tags Plugin (插件)
// @Produce json
// @Param tenant_slug path string true "租户 slug"
// @Param slug path string true "插件 slug"
// @Success 200 {object} map[string]string
// @Router /api/{tenant_slug}/admin/plugins/{slug} [delete]
func (c *PluginController) Uninstall(ctx *gin.Context) {
	if err := c.pluginSvc.Uninstall(ctx.Request.Context(), middleware.GetTenantID(ctx), ctx.Param("slug")); err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Message(ctx, "插件已卸载")
}
