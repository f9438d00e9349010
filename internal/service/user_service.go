package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/logger"

	"go.uber.org/zap"
)

// CreateUserRequest 注册用户请求
// 管理员、认证标记不接受客户端写入
type CreateUserRequest struct {
	ExternalAuthID string     `json:"uuid" validate:"required,max=128"`
	Handle         string     `json:"accountHandle" validate:"required,max=64"`
	DisplayName    string     `json:"displayName" validate:"required,max=128"`
	Email          string     `json:"email" validate:"required,email"`
	CreationTime   *time.Time `json:"creationTime"`
	PhotoURL       *string    `json:"photoURL" validate:"omitempty,url"`
	Bio            string     `json:"bio" validate:"max=512"`
	IsPrivate      bool       `json:"isPrivate"`
}

// UpdateUserRequest 局部更新用户资料，只有非空字段会被写入
// PhotoURL 传空字符串表示清除头像
type UpdateUserRequest struct {
	Handle      *string `json:"accountHandle" validate:"omitempty,min=1,max=64"`
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=128"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhotoURL    *string `json:"photoURL" validate:"omitempty,url"`
	Bio         *string `json:"bio" validate:"omitempty,max=512"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// normalize 去除文本字段首尾空白，需在校验前调用
func (r *UpdateUserRequest) normalize() {
	for _, p := range []**string{&r.Handle, &r.DisplayName, &r.Email} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

// fields 转换为列名到值的映射
func (r *UpdateUserRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Handle != nil {
		fields["handle"] = *r.Handle
	}
	if r.DisplayName != nil {
		fields["display_name"] = *r.DisplayName
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.PhotoURL != nil {
		if *r.PhotoURL == "" {
			fields["photo_url"] = nil
		} else {
			fields["photo_url"] = *r.PhotoURL
		}
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.IsPrivate != nil {
		fields["is_private"] = *r.IsPrivate
	}
	return fields
}

type UserService struct {
	users   *repository.UserRepository
	posts   *repository.PostRepository
	follows *repository.FollowRepository
}

func NewUserService(users *repository.UserRepository, posts *repository.PostRepository, follows *repository.FollowRepository) *UserService {
	return &UserService{users: users, posts: posts, follows: follows}
}

// CreateUser 注册用户
// 句柄冲突返回 ErrHandleTaken，外部身份ID冲突返回 ErrUserExists，两者都包裹 ErrConstraintViolation
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	req.ExternalAuthID = strings.TrimSpace(req.ExternalAuthID)
	req.Handle = strings.TrimSpace(req.Handle)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	user := &model.User{
		ExternalAuthID: req.ExternalAuthID,
		Handle:         req.Handle,
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		PhotoURL:       req.PhotoURL,
		Bio:            req.Bio,
		IsPrivate:      req.IsPrivate,
	}
	if req.CreationTime != nil {
		user.CreatedAt = *req.CreationTime
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, s.classifyConflict(ctx, req.Handle, err)
		}
		logger.Error("创建用户失败", zap.String("handle", req.Handle), zap.Error(err))
		return nil, err
	}

	logger.Info("用户注册成功", zap.String("user_id", user.ID), zap.String("handle", user.Handle))
	return user, nil
}

// classifyConflict 判断唯一冲突来自句柄还是外部身份ID
func (s *UserService) classifyConflict(ctx context.Context, handle string, cause error) error {
	taken, err := s.users.ExistsByHandle(ctx, handle)
	if err == nil && taken {
		return fmt.Errorf("%w: %w", ErrHandleTaken, cause)
	}
	return fmt.Errorf("%w: %w", ErrUserExists, cause)
}

// GetByExternalAuthID 按外部身份ID获取用户，不存在时返回 nil
func (s *UserService) GetByExternalAuthID(ctx context.Context, externalAuthID string) (*model.User, error) {
	if err := requireIDs("id", externalAuthID); err != nil {
		return nil, err
	}
	return s.users.GetByExternalAuthID(ctx, externalAuthID)
}

// UpdateUser 局部更新用户资料，返回更新后的用户；用户不存在时返回 nil
func (s *UserService) UpdateUser(ctx context.Context, externalAuthID string, req UpdateUserRequest) (*model.User, error) {
	if err := requireIDs("id", externalAuthID); err != nil {
		return nil, err
	}
	req.normalize()
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	if err := s.users.UpdateByExternalAuthID(ctx, externalAuthID, req.fields()); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %w", ErrHandleTaken, err)
		}
		logger.Error("更新用户失败", zap.String("external_auth_id", externalAuthID), zap.Error(err))
		return nil, err
	}
	return s.users.GetByExternalAuthID(ctx, externalAuthID)
}

// HandleInUse 句柄是否已被占用
func (s *UserService) HandleInUse(ctx context.Context, handle string) (bool, error) {
	if err := requireIDs("handle", handle); err != nil {
		return false, err
	}
	return s.users.ExistsByHandle(ctx, strings.TrimSpace(handle))
}

// PublicProfile 用户公开资料，不存在时返回 nil
func (s *UserService) PublicProfile(ctx context.Context, userID string) (*model.PublicProfile, error) {
	if err := requireIDs("id", userID); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return u.PublicProfile(), nil
}

// ProfileCounts 帖子数、粉丝数、关注数
// 三次独立计数，不保证来自同一快照
func (s *UserService) ProfileCounts(ctx context.Context, userID string) (*model.ProfileCounts, error) {
	if err := requireIDs("id", userID); err != nil {
		return nil, err
	}

	posts, err := s.posts.CountByPoster(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileCounts{Posts: posts, Followers: followers, Following: following}, nil
}
