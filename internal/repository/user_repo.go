package repository

import (
	"context"

	"gorm.io/gorm"

	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 接口定义 ====================

// UserRepository 用户仓储
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
	SetAPIKey(ctx context.Context, id int64, apiKey string) error
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return errs.FromDB(err, "用户不存在", "邮箱已被注册")
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, errs.FromDB(err, "用户不存在", "")
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, errs.FromDB(err, "用户不存在", "")
	}
	return &user, nil
}

func (r *userRepo) GetByAPIKey(ctx context.Context, apiKey string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&user).Error
	if err != nil {
		return nil, errs.FromDB(err, "用户不存在", "")
	}
	return &user, nil
}

func (r *userRepo) SetAPIKey(ctx context.Context, id int64, apiKey string) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("api_key", apiKey)
	if result.Error != nil {
		return errs.FromDB(result.Error, "用户不存在", "API Key 冲突，请重试")
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("用户不存在")
	}
	return nil
}
