package repository

import (
	"context"
	"errors"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据仓储
type UserRepository struct {
	orm *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(orm *gorm.DB) *UserRepository {
	return &UserRepository{orm: orm}
}

// Create 创建用户，外部身份ID或句柄冲突时返回 ErrConstraintViolation
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate("create user", r.orm.WithContext(ctx).Create(user).Error)
}

// GetByID 根据ID获取用户，不存在时返回 nil, nil
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "get user by id", "id = ?", id)
}

// GetByExternalAuthID 根据外部身份ID获取用户，不存在时返回 nil, nil
func (r *UserRepository) GetByExternalAuthID(ctx context.Context, externalAuthID string) (*model.User, error) {
	return r.findOne(ctx, "get user by external auth id", "external_auth_id = ?", externalAuthID)
}

// ExistsByHandle 句柄是否已被占用
func (r *UserRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.orm.WithContext(ctx).Model(&model.User{}).
		Where("handle = ?", handle).
		Count(&count).Error
	if err != nil {
		return false, translate("check handle", err)
	}
	return count > 0, nil
}

// UpdateByExternalAuthID 局部更新用户资料，fields 的键为列名
func (r *UserRepository) UpdateByExternalAuthID(ctx context.Context, externalAuthID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.orm.WithContext(ctx).Model(&model.User{}).
		Where("external_auth_id = ?", externalAuthID).
		Updates(fields).Error
	return translate("update user", err)
}

func (r *UserRepository) findOne(ctx context.Context, op string, query string, args ...interface{}) (*model.User, error) {
	var u model.User
	err := r.orm.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(op, err)
	}
	return &u, nil
}
