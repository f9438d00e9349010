package service

import (
	"context"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/logger"

	"go.uber.org/zap"
)

// FollowRequestBody 关注关系请求体
type FollowRequestBody struct {
	FollowerID string `json:"followerId" validate:"required"`
	FollowedID string `json:"followedId" validate:"required"`
}

// FollowService 关注服务
type FollowService struct {
	follows *repository.FollowRepository
}

// NewFollowService 创建FollowService实例
func NewFollowService(follows *repository.FollowRepository) *FollowService {
	return &FollowService{follows: follows}
}

// AddFollow 关注，不做重复检查
func (s *FollowService) AddFollow(ctx context.Context, req FollowRequestBody) (*model.Follow, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	follow := &model.Follow{FollowerID: req.FollowerID, FollowedID: req.FollowedID}
	if err := s.follows.Create(ctx, follow); err != nil {
		logger.Error("创建关注失败",
			zap.String("follower_id", req.FollowerID),
			zap.String("followed_id", req.FollowedID),
			zap.Error(err),
		)
		return nil, err
	}
	return follow, nil
}

// RemoveFollow 取消关注，注意参数顺序为 (被关注者, 关注者)
// 关系不存在时同样成功
func (s *FollowService) RemoveFollow(ctx context.Context, followedID, followerID string) error {
	if err := requireIDs("following", followedID, "follower", followerID); err != nil {
		return err
	}
	if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
		logger.Error("取消关注失败",
			zap.String("follower_id", followerID),
			zap.String("followed_id", followedID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// FollowExists followerID 是否关注了 followedID
func (s *FollowService) FollowExists(ctx context.Context, followerID, followedID string) (bool, error) {
	if err := requireIDs("current", followerID, "target", followedID); err != nil {
		return false, err
	}
	return s.follows.Exists(ctx, followerID, followedID)
}

// Followers 粉丝列表，附关注者摘要
func (s *FollowService) Followers(ctx context.Context, userID string) ([]*model.FollowWithUser, error) {
	if err := requireIDs("followers", userID); err != nil {
		return nil, err
	}
	follows, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]*model.FollowWithUser, 0, len(follows))
	for _, f := range follows {
		result = append(result, withUser(f, f.Follower))
	}
	return result, nil
}

// Following 关注列表，附被关注者摘要
func (s *FollowService) Following(ctx context.Context, userID string) ([]*model.FollowWithUser, error) {
	if err := requireIDs("following", userID); err != nil {
		return nil, err
	}
	follows, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]*model.FollowWithUser, 0, len(follows))
	for _, f := range follows {
		result = append(result, withUser(f, f.Followed))
	}
	return result, nil
}

func withUser(f *model.Follow, counterpart *model.User) *model.FollowWithUser {
	return &model.FollowWithUser{
		ID:         f.ID,
		FollowerID: f.FollowerID,
		FollowedID: f.FollowedID,
		FollowedAt: f.FollowedAt,
		User:       counterpart.Summary(),
	}
}
