package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/logger"

	"go.uber.org/zap"
)

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	PosterID string     `json:"posterId" validate:"required"`
	Text     string     `json:"text" validate:"required"`
	ImageURL *string    `json:"imageURL" validate:"omitempty,url"`
	PostedAt *time.Time `json:"postedAt"`
}

// PostService 帖子服务
type PostService struct {
	posts *repository.PostRepository
	users *repository.UserRepository
	likes *repository.LikeRepository
}

// NewPostService 创建PostService实例
func NewPostService(posts *repository.PostRepository, users *repository.UserRepository, likes *repository.LikeRepository) *PostService {
	return &PostService{posts: posts, users: users, likes: likes}
}

// CreatePost 发布帖子，发帖人必须存在
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (*model.Post, error) {
	req.PosterID = strings.TrimSpace(req.PosterID)
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	// 检查发帖人是否存在
	poster, err := s.users.GetByID(ctx, req.PosterID)
	if err != nil {
		return nil, err
	}
	if poster == nil {
		return nil, &ValidationError{Field: "posterId", Message: "user does not exist"}
	}

	post := &model.Post{
		PosterID: req.PosterID,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	}
	if req.PostedAt != nil {
		post.PostedAt = *req.PostedAt
	}

	if err := s.posts.Create(ctx, post); err != nil {
		logger.Error("发布帖子失败", zap.String("poster_id", req.PosterID), zap.Error(err))
		return nil, err
	}
	return post, nil
}

// PostsByUser 用户的帖子，按发布时间倒序，附发帖人摘要和点赞数
// 点赞数逐条查询（N+1），帖子数量大时需要改为聚合查询
func (s *PostService) PostsByUser(ctx context.Context, userID string) ([]*model.PostWithPoster, error) {
	if err := requireIDs("id", userID); err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByPoster(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*model.PostWithPoster, 0, len(posts))
	for _, p := range posts {
		enriched, err := s.enrich(ctx, p)
		if err != nil {
			return nil, err
		}
		result = append(result, enriched)
	}
	return result, nil
}

// GetPost 获取单个帖子，不存在时返回 nil
func (s *PostService) GetPost(ctx context.Context, postID string) (*model.PostWithPoster, error) {
	if err := requireIDs("id", postID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post == nil {
		return nil, err
	}
	return s.enrich(ctx, post)
}

// RandomPost 随机取一个帖子，没有帖子时返回 nil
func (s *PostService) RandomPost(ctx context.Context) (*model.PostWithPoster, error) {
	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	post, err := s.posts.GetAt(ctx, rand.Intn(int(total)))
	if err != nil || post == nil {
		return nil, err
	}
	return s.enrich(ctx, post)
}

// DeletePost 删除帖子，点赞记录保留
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	if err := requireIDs("id", postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		logger.Error("删除帖子失败", zap.String("post_id", postID), zap.Error(err))
		return err
	}
	return nil
}

// enrich 附加发帖人摘要和点赞数
func (s *PostService) enrich(ctx context.Context, p *model.Post) (*model.PostWithPoster, error) {
	likes, err := s.likes.CountByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &model.PostWithPoster{
		ID:       p.ID,
		PosterID: p.PosterID,
		Text:     p.Text,
		ImageURL: p.ImageURL,
		PostedAt: p.PostedAt,
		Poster:   p.Poster.Summary(),
		Likes:    likes,
	}, nil
}
