package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/service"
)

type AuthController struct {
	authSvc *service.AuthService
	logger  *zap.SugaredLogger
}

func NewAuthController(authSvc *service.AuthService, logger *zap.SugaredLogger) *AuthController {
	return &AuthController{authSvc: authSvc, logger: logger}
}

// AdminLogin 平台管理端登录
// @Summary 管理端登录
// @Description 邮箱密码登录，返回 admin token（24 小时有效）
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param body body dto.LoginReq true "登录信息"
// @Success 200 {object} dto.LoginResp "token 与用户信息"
// @Failure 401 {object} map[string]string "邮箱或密码错误"
// @Router /api/auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	resp, err := c.authSvc.AdminLogin(ctx.Request.Context(), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, resp)
}

// TenantLogin 租户端登录
// @Summary 租户端登录
// @Description 邮箱密码登录，返回 tenant token（与 admin token 密钥隔离，互不可用）
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param body body dto.LoginReq true "登录信息"
// @Success 200 {object} dto.LoginResp "token 与用户信息"
// @Failure 401 {object} map[string]string "邮箱或密码错误"
// @Router /api/auth/tenant/login [post]
func (c *AuthController) TenantLogin(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BadRequest(ctx, err)
		return
	}

	resp, err := c.authSvc.TenantLogin(ctx.Request.Context(), req)
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	OK(ctx, resp)
}

// IssueAPIKey 重新签发 API Key
// @Summary 签发 API Key
// @Description 给当前管理员重新签发静态 API Key，旧 key 立即失效，明文只返回一次
// @Tags Auth (认证)
// @Produce json
// @Success 201 {object} dto.APIKeyResp "新 API Key"
// @Failure 403 {object} map[string]string "仅管理员可签发"
// @Router /api/auth/admin/api-keys [post]
func (c *AuthController) IssueAPIKey(ctx *gin.Context) {
	resp, err := c.authSvc.IssueAPIKey(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		Fail(ctx, c.logger, err)
		return
	}
	Created(ctx, resp)
}
