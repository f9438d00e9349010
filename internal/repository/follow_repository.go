package repository

import (
	"context"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// FollowRepository 关注关系数据仓储
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建FollowRepository实例
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create 创建关注关系，不检查重复
func (r *FollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	return translate("create follow", r.db.WithContext(ctx).Create(follow).Error)
}

// Delete 删除一条与 (followerID, followedID) 完全匹配的关注记录
// 没有匹配记录时什么也不做
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return translate("find follow", err)
	}
	if len(ids) == 0 {
		return nil
	}
	err = r.db.WithContext(ctx).Where("id = ?", ids[0]).Delete(&model.Follow{}).Error
	return translate("delete follow", err)
}

// Exists followerID 是否关注了 followedID
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, translate("check follow", err)
	}
	return count > 0, nil
}

// CountFollowers 粉丝数
func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, translate("count followers", err)
}

// CountFollowing 关注数
func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, translate("count following", err)
}

// ListFollowers 关注 userID 的记录（附关注者摘要），按关注时间倒序
func (r *FollowRepository) ListFollowers(ctx context.Context, userID string) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower", func(tx *gorm.DB) *gorm.DB { return tx.Select(model.SummaryColumns) }).
		Where("followed_id = ?", userID).
		Order("followed_at DESC").
		Find(&follows).Error
	return follows, translate("list followers", err)
}

// ListFollowing userID 关注的记录（附被关注者摘要），按关注时间倒序
func (r *FollowRepository) ListFollowing(ctx context.Context, userID string) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := r.db.WithContext(ctx).
		Preload("Followed", func(tx *gorm.DB) *gorm.DB { return tx.Select(model.SummaryColumns) }).
		Where("follower_id = ?", userID).
		Order("followed_at DESC").
		Find(&follows).Error
	return follows, translate("list following", err)
}
