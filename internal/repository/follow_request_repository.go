package repository

import (
	"context"
	"errors"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// FollowRequestRepository 关注请求数据仓储
type FollowRequestRepository struct {
	db *gorm.DB
}

// NewFollowRequestRepository 创建FollowRequestRepository实例
func NewFollowRequestRepository(db *gorm.DB) *FollowRequestRepository {
	return &FollowRequestRepository{db: db}
}

// Create 创建关注请求
func (r *FollowRequestRepository) Create(ctx context.Context, req *model.FollowRequest) error {
	return translate("create follow request", r.db.WithContext(ctx).Create(req).Error)
}

// GetByID 根据ID获取关注请求，不存在时返回 ErrNotFound
func (r *FollowRequestRepository) GetByID(ctx context.Context, id string) (*model.FollowRequest, error) {
	var req model.FollowRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, translate("get follow request", err)
	}
	return &req, nil
}

// Delete 删除一条 (requesterID, targetID) 的关注请求，没有时什么也不做
func (r *FollowRequestRepository) Delete(ctx context.Context, requesterID, targetID string) error {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.FollowRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return translate("find follow request", err)
	}
	if len(ids) == 0 {
		return nil
	}
	err = r.db.WithContext(ctx).Where("id = ?", ids[0]).Delete(&model.FollowRequest{}).Error
	return translate("delete follow request", err)
}

// Exists requesterID 是否有发给 targetID 的待处理请求
func (r *FollowRequestRepository) Exists(ctx context.Context, requesterID, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FollowRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Count(&count).Error
	if err != nil {
		return false, translate("check follow request", err)
	}
	return count > 0, nil
}

// ListByTarget 发给 targetID 的请求（附请求者摘要），按时间倒序
func (r *FollowRequestRepository) ListByTarget(ctx context.Context, targetID string) ([]*model.FollowRequest, error) {
	var reqs []*model.FollowRequest
	err := r.db.WithContext(ctx).
		Preload("Requester", func(tx *gorm.DB) *gorm.DB { return tx.Select(model.SummaryColumns) }).
		Where("target_id = ?", targetID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, translate("list follow requests", err)
}
