package repository

import (
	"context"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// LikeRepository 点赞数据仓储
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建LikeRepository实例
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create 创建点赞，不检查重复
func (r *LikeRepository) Create(ctx context.Context, like *model.Like) error {
	return translate("create like", r.db.WithContext(ctx).Create(like).Error)
}

// Delete 删除一条 (likerID, postID) 的点赞，没有时什么也不做
func (r *LikeRepository) Delete(ctx context.Context, likerID, postID string) error {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liker_id = ? AND post_id = ?", likerID, postID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return translate("find like", err)
	}
	if len(ids) == 0 {
		return nil
	}
	err = r.db.WithContext(ctx).Where("id = ?", ids[0]).Delete(&model.Like{}).Error
	return translate("delete like", err)
}

// Exists likerID 是否赞过 postID
func (r *LikeRepository) Exists(ctx context.Context, likerID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liker_id = ? AND post_id = ?", likerID, postID).
		Count(&count).Error
	if err != nil {
		return false, translate("check like", err)
	}
	return count > 0, nil
}

// CountByPost 帖子点赞数
func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, translate("count likes by post", err)
}

// ListByPost 帖子的点赞记录，按时间倒序
func (r *LikeRepository) ListByPost(ctx context.Context, postID string) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("liked_at DESC").
		Find(&likes).Error
	return likes, translate("list likes by post", err)
}

// ListByLiker 用户的点赞记录，按时间倒序
func (r *LikeRepository) ListByLiker(ctx context.Context, likerID string) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.WithContext(ctx).
		Where("liker_id = ?", likerID).
		Order("liked_at DESC").
		Find(&likes).Error
	return likes, translate("list likes by user", err)
}
