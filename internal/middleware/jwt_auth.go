package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/repository"
)

// ==================== JWT 配置 ====================

// TokenKind token 类别：管理端和租户端使用独立密钥签名，互不可用
type TokenKind string

const (
	TokenAdmin  TokenKind = "admin"
	TokenTenant TokenKind = "tenant"
)

// JWTManager 双密钥 JWT 管理器
// 显式注入使用，不做包级单例
type JWTManager struct {
	adminSecret  []byte
	tenantSecret []byte
	ttl          time.Duration
	issuer       string
}

// NewJWTManager 创建 JWT 管理器，token 有效期 24 小时
func NewJWTManager(adminSecret, tenantSecret string) *JWTManager {
	return &JWTManager{
		adminSecret:  []byte(adminSecret),
		tenantSecret: []byte(tenantSecret),
		ttl:          24 * time.Hour,
		issuer:       "shophub",
	}
}

// ==================== Claims 定义 ====================

// AuthClaims 用户声明
type AuthClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 / 解析 ====================

func (m *JWTManager) secret(kind TokenKind) []byte {
	if kind == TokenAdmin {
		return m.adminSecret
	}
	return m.tenantSecret
}

// Generate 签发 token
func (m *JWTManager) Generate(kind TokenKind, user *model.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   string(kind),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret(kind))
}

// Parse 解析并校验 token（只校验签名和有效期，无吊销机制）
func (m *JWTManager) Parse(kind TokenKind, tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret(kind), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	// 类别不匹配（如用租户 token 访问管理接口）视为无效
	if claims.Subject != string(kind) {
		return nil, errors.New("invalid token kind")
	}
	return claims, nil
}

// ==================== Context Keys ====================

const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"
	ContextKeyRole   = "auth_role"
	ContextKeyClaims = "auth_claims"
)

func setIdentity(c *gin.Context, claims *AuthClaims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyEmail, claims.Email)
	c.Set(ContextKeyRole, claims.Role)
	c.Set(ContextKeyClaims, claims)
}

// bearerToken 从 Authorization 头取 Bearer token
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"error":      msg,
		"statusCode": http.StatusUnauthorized,
	})
}

// ==================== Gin 中间件 ====================

// VerifyAdminToken 管理端认证：要求有效的 admin JWT 且角色为 admin/super_admin
func VerifyAdminToken(m *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "未提供认证信息")
			return
		}
		claims, err := m.Parse(TokenAdmin, token)
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}
		if claims.Role != model.RoleAdmin && claims.Role != model.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":    false,
				"error":      "无权限访问",
				"statusCode": http.StatusForbidden,
			})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// VerifyAdminTokenOrAPIKey 管理端认证：admin JWT 或 X-API-Key 静态凭证二选一
// API Key 供 CLI / 自动化调用，直接比对 user 表
func VerifyAdminTokenOrAPIKey(m *JWTManager, users repository.UserRepository) gin.HandlerFunc {
	jwtAuth := VerifyAdminToken(m)
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			jwtAuth(c)
			return
		}

		user, err := users.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil || !user.IsAdmin() {
			abortUnauthorized(c, "API Key 无效")
			return
		}
		setIdentity(c, &AuthClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// VerifyTenantToken 租户端认证：要求有效的租户 JWT
func VerifyTenantToken(m *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "未提供认证信息")
			return
		}
		claims, err := m.Parse(TokenTenant, token)
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalTenantToken 可选认证：token 有效则附加身份，缺失或无效都放行
// 用于店面公开读路径
func OptionalTenantToken(m *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := m.Parse(TokenTenant, token)
		if err != nil {
			c.Next()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID（未认证时为 0）
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUserRole 从 Context 获取用户角色
func GetUserRole(c *gin.Context) string {
	if role, exists := c.Get(ContextKeyRole); exists {
		return role.(string)
	}
	return ""
}
