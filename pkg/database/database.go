package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 数据库连接选项
type Options struct {
	Type       string // postgres | sqlite
	DSN        string // postgres 连接串
	SQLitePath string // sqlite 文件路径，可用 :memory:
	LogSQL     bool   // 开发环境打印 SQL
}

// Open 打开数据库连接并执行迁移
// 两种后端共用同一套 model / repository，租户过滤语义完全一致
// TranslateError 开启后，唯一约束冲突统一表现为 gorm.ErrDuplicatedKey
func Open(opts Options, models ...interface{}) (*gorm.DB, error) {
	logMode := logger.Silent
	if opts.LogSQL {
		logMode = logger.Info
	}

	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	switch opts.Type {
	case "postgres":
		db, err = gorm.Open(postgres.Open(opts.DSN), cfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(opts.SQLitePath), cfg)
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", opts.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 连接池参数（sqlite 下仅限制并发写）
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.Type == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("自动建表出错: %w", err)
		}
	}

	return db, nil
}

// OpenForTest 打开内存库（单元测试用）
func OpenForTest(models ...interface{}) (*gorm.DB, error) {
	return Open(Options{Type: "sqlite", SQLitePath: ":memory:"}, models...)
}
