package service

import (
	"context"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/logger"

	"go.uber.org/zap"
)

// LikeRequestBody 点赞请求体
type LikeRequestBody struct {
	LikerID string `json:"likerId" validate:"required"`
	PostID  string `json:"postId" validate:"required"`
}

// LikeService 点赞服务
type LikeService struct {
	likes *repository.LikeRepository
}

// NewLikeService 创建LikeService实例
func NewLikeService(likes *repository.LikeRepository) *LikeService {
	return &LikeService{likes: likes}
}

// AddLike 点赞，不做重复检查
func (s *LikeService) AddLike(ctx context.Context, req LikeRequestBody) (*model.Like, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	like := &model.Like{LikerID: req.LikerID, PostID: req.PostID}
	if err := s.likes.Create(ctx, like); err != nil {
		logger.Error("点赞失败", zap.String("liker_id", req.LikerID), zap.String("post_id", req.PostID), zap.Error(err))
		return nil, err
	}
	return like, nil
}

// RemoveLike 取消点赞，不存在时同样成功
func (s *LikeService) RemoveLike(ctx context.Context, likerID, postID string) error {
	if err := requireIDs("liker", likerID, "post", postID); err != nil {
		return err
	}
	if err := s.likes.Delete(ctx, likerID, postID); err != nil {
		logger.Error("取消点赞失败", zap.String("liker_id", likerID), zap.String("post_id", postID), zap.Error(err))
		return err
	}
	return nil
}

// LikeExists likerID 是否赞过 postID
func (s *LikeService) LikeExists(ctx context.Context, likerID, postID string) (bool, error) {
	if err := requireIDs("liker", likerID, "post", postID); err != nil {
		return false, err
	}
	return s.likes.Exists(ctx, likerID, postID)
}

// LikesByPost 帖子的点赞记录
func (s *LikeService) LikesByPost(ctx context.Context, postID string) ([]*model.Like, error) {
	if err := requireIDs("post", postID); err != nil {
		return nil, err
	}
	return s.likes.ListByPost(ctx, postID)
}

// LikesByUser 用户的点赞记录
func (s *LikeService) LikesByUser(ctx context.Context, userID string) ([]*model.Like, error) {
	if err := requireIDs("user", userID); err != nil {
		return nil, err
	}
	return s.likes.ListByLiker(ctx, userID)
}

// CountByPost 帖子点赞数
func (s *LikeService) CountByPost(ctx context.Context, postID string) (int64, error) {
	if err := requireIDs("id", postID); err != nil {
		return 0, err
	}
	return s.likes.CountByPost(ctx, postID)
}
