package repository

import (
	"context"
	"errors"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// PostRepository 帖子数据仓储
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// withPoster 预加载发帖人，只取摘要列
func withPoster(db *gorm.DB) *gorm.DB {
	return db.Preload("Poster", func(tx *gorm.DB) *gorm.DB {
		return tx.Select(model.SummaryColumns)
	})
}

// Create 创建帖子
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate("create post", r.db.WithContext(ctx).Create(post).Error)
}

// GetByID 根据ID获取帖子（含发帖人摘要），不存在时返回 nil, nil
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := withPoster(r.db.WithContext(ctx)).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("get post", err)
	}
	return &post, nil
}

// ListByPoster 获取用户的帖子，按发布时间倒序
func (r *PostRepository) ListByPoster(ctx context.Context, posterID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := withPoster(r.db.WithContext(ctx)).
		Where("poster_id = ?", posterID).
		Order("posted_at DESC").
		Find(&posts).Error
	return posts, translate("list posts by poster", err)
}

// CountByPoster 用户帖子数
func (r *PostRepository) CountByPoster(ctx context.Context, posterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("poster_id = ?", posterID).
		Count(&count).Error
	return count, translate("count posts by poster", err)
}

// Count 帖子总数
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, translate("count posts", err)
}

// GetAt 按ID排序取第 offset 条帖子，越界时返回 nil, nil
func (r *PostRepository) GetAt(ctx context.Context, offset int) (*model.Post, error) {
	var posts []*model.Post
	err := withPoster(r.db.WithContext(ctx)).
		Order("id").
		Offset(offset).
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, translate("get post at offset", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

// Delete 删除帖子，不级联删除点赞
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
	return translate("delete post", err)
}
