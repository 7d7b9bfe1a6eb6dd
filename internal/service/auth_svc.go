package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shophub_v1_202608/internal/dto"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/pkg/errs"
	"shophub_v1_202608/pkg/utils"
)

// ==================== 认证服务 ====================

type AuthService struct {
	users        repository.UserRepository
	jwt          *middleware.JWTManager
	bcryptRounds int
	logger       *zap.SugaredLogger
}

// NewAuthService 工厂方法
func NewAuthService(users repository.UserRepository, jwt *middleware.JWTManager, bcryptRounds int, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:        users,
		jwt:          jwt,
		bcryptRounds: bcryptRounds,
		logger:       logger,
	}
}

// login 核心登录流程，kind 决定签发哪个密钥的 token
func (s *AuthService) login(ctx context.Context, kind middleware.TokenKind, req dto.LoginReq) (*dto.LoginResp, error) {
	// 1. 查用户；不存在和密码错误返回同一错误消息，避免枚举邮箱
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errs.Unauthorized("邮箱或密码错误")
	}

	// 2. 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.Unauthorized("邮箱或密码错误")
	}

	// 3. 管理端登录额外要求管理员角色
	if kind == middleware.TokenAdmin && !user.IsAdmin() {
		return nil, errs.Forbidden("无权限访问管理后台")
	}

	// 4. 签发 token
	token, err := s.jwt.Generate(kind, user)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("签发 token 失败: %w", err))
	}

	return &dto.LoginResp{
		Token: token,
		User:  dto.UserResp{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// AdminLogin 平台管理端登录
func (s *AuthService) AdminLogin(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	return s.login(ctx, middleware.TokenAdmin, req)
}

// TenantLogin 租户端登录
func (s *AuthService) TenantLogin(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	return s.login(ctx, middleware.TokenTenant, req)
}

// IssueAPIKey 给当前用户重新签发静态 API Key，旧 key 立即失效
// 明文只在响应里出现一次
func (s *AuthService) IssueAPIKey(ctx context.Context, userID int64) (*dto.APIKeyResp, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, errs.Forbidden("仅管理员可签发 API Key")
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("生成 API Key 失败: %w", err))
	}
	if err := s.users.SetAPIKey(ctx, user.ID, apiKey); err != nil {
		return nil, err
	}
	return &dto.APIKeyResp{APIKey: apiKey}, nil
}

// EnsureSuperAdmin 启动时保证超级管理员存在（幂等）
// 账号来自环境配置，已存在则跳过
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, email, password, apiKey string) error {
	if email == "" || password == "" {
		s.logger.Warn("未配置超级管理员账号，跳过初始化")
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errs.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptRounds)
	if err != nil {
		return fmt.Errorf("密码散列失败: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleSuperAdmin,
	}
	if apiKey != "" {
		user.APIKey = &apiKey
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 并发启动时可能撞唯一键，视为已初始化
		if errs.IsConflict(err) {
			return nil
		}
		return err
	}

	s.logger.Infow("超级管理员已初始化", "email", email)
	return nil
}

// Register 创建普通用户（租户端下单人）
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptRounds)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("密码散列失败: %w", err))
	}
	user := &model.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
