package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 应用配置，全部来自环境变量（支持 .env）
type AppConfig struct {
	// 服务
	ServerPort string
	AppEnv     string // development | production

	// 数据库
	DBType      string // postgres | sqlite
	DatabaseURL string // postgres DSN
	SQLitePath  string // sqlite 文件路径，测试可用 :memory:

	// 认证
	AdminJWTSecret  string
	TenantJWTSecret string
	BcryptRounds    int

	// 超级管理员（启动时确保存在）
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminAPIKey   string

	// 插件
	PluginDir string

	// 限流
	RateLimitMax    int
	RateLimitWindow int // 秒

	// 上传
	MaxFileSize int64 // 字节

	// 对象存储
	StorageProvider  string // s3 | local
	StorageBucket    string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageEndpoint  string
	StorageCDNDomain string
	StorageLocalDir  string
}

// Load 加载配置
// 优先级：环境变量 > .env > 默认值
func Load() (*AppConfig, error) {
	// .env 不存在时静默忽略
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_TYPE", "postgres")
	v.SetDefault("SQLITE_PATH", "shophub.db")
	v.SetDefault("BCRYPT_ROUNDS", 10)
	v.SetDefault("PLUGIN_DIR", "plugins")
	v.SetDefault("RATE_LIMIT_MAX", 120)
	v.SetDefault("RATE_LIMIT_WINDOW", 60)
	v.SetDefault("MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "uploads")

	cfg := &AppConfig{
		ServerPort:         v.GetString("SERVER_PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		DBType:             v.GetString("DB_TYPE"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		AdminJWTSecret:     v.GetString("ADMIN_JWT_SECRET"),
		TenantJWTSecret:    v.GetString("TENANT_JWT_SECRET"),
		BcryptRounds:       v.GetInt("BCRYPT_ROUNDS"),
		SuperAdminEmail:    v.GetString("SUPER_ADMIN_EMAIL"),
		SuperAdminPassword: v.GetString("SUPER_ADMIN_PASSWORD"),
		SuperAdminAPIKey:   v.GetString("SUPER_ADMIN_API_KEY"),
		PluginDir:          v.GetString("PLUGIN_DIR"),
		RateLimitMax:       v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:    v.GetInt("RATE_LIMIT_WINDOW"),
		MaxFileSize:        v.GetInt64("MAX_FILE_SIZE"),
		StorageProvider:    v.GetString("STORAGE_PROVIDER"),
		StorageBucket:      v.GetString("STORAGE_BUCKET"),
		StorageRegion:      v.GetString("STORAGE_REGION"),
		StorageAccessKey:   v.GetString("STORAGE_ACCESS_KEY"),
		StorageSecretKey:   v.GetString("STORAGE_SECRET_KEY"),
		StorageEndpoint:    v.GetString("STORAGE_ENDPOINT"),
		StorageCDNDomain:   v.GetString("STORAGE_CDN_DOMAIN"),
		StorageLocalDir:    v.GetString("STORAGE_LOCAL_DIR"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.AdminJWTSecret == "" || c.TenantJWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET / TENANT_JWT_SECRET 必须配置")
	}
	if c.DBType == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("DB_TYPE=postgres 时必须配置 DATABASE_URL")
	}
	return nil
}

// IsProduction 是否生产环境
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}
