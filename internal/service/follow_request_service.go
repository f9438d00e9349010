package service

import (
	"context"
	"fmt"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/logger"

	"go.uber.org/zap"
)

// FollowRequestCreate 关注请求请求体
type FollowRequestCreate struct {
	RequesterID string `json:"requesterId" validate:"required"`
	TargetID    string `json:"targetId" validate:"required"`
}

// FollowRequestService 关注请求服务
// Approve 由三步组成，不在事务中执行
type FollowRequestService struct {
	requests *repository.FollowRequestRepository
	follows  *repository.FollowRepository
}

// NewFollowRequestService 创建FollowRequestService实例
func NewFollowRequestService(requests *repository.FollowRequestRepository, follows *repository.FollowRepository) *FollowRequestService {
	return &FollowRequestService{requests: requests, follows: follows}
}

// AddFollowRequest 发起关注请求
func (s *FollowRequestService) AddFollowRequest(ctx context.Context, req FollowRequestCreate) (*model.FollowRequest, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	fr := &model.FollowRequest{RequesterID: req.RequesterID, TargetID: req.TargetID}
	if err := s.requests.Create(ctx, fr); err != nil {
		logger.Error("创建关注请求失败",
			zap.String("requester_id", req.RequesterID),
			zap.String("target_id", req.TargetID),
			zap.Error(err),
		)
		return nil, err
	}
	return fr, nil
}

// RemoveFollowRequest 撤回或拒绝关注请求，不存在时同样成功
func (s *FollowRequestService) RemoveFollowRequest(ctx context.Context, requesterID, targetID string) error {
	if err := requireIDs("requester", requesterID, "target", targetID); err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, requesterID, targetID); err != nil {
		logger.Error("删除关注请求失败",
			zap.String("requester_id", requesterID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// FollowRequestExists requesterID 是否有发给 targetID 的待处理请求
func (s *FollowRequestService) FollowRequestExists(ctx context.Context, requesterID, targetID string) (bool, error) {
	if err := requireIDs("requester", requesterID, "target", targetID); err != nil {
		return false, err
	}
	return s.requests.Exists(ctx, requesterID, targetID)
}

// RequestsForUser 发给 targetID 的待处理请求，附请求者摘要
func (s *FollowRequestService) RequestsForUser(ctx context.Context, targetID string) ([]*model.FollowRequestWithUser, error) {
	if err := requireIDs("id", targetID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	result := make([]*model.FollowRequestWithUser, 0, len(reqs))
	for _, r := range reqs {
		result = append(result, &model.FollowRequestWithUser{
			ID:          r.ID,
			RequesterID: r.RequesterID,
			TargetID:    r.TargetID,
			RequestedAt: r.RequestedAt,
			Requester:   r.Requester.Summary(),
		})
	}
	return result, nil
}

// Approve 通过关注请求：读取请求 -> 创建关注 -> 删除请求
// 没有补偿：关注已创建而删除失败时，关注与旧请求同时存在并返回错误
func (s *FollowRequestService) Approve(ctx context.Context, requestID string) (*model.Follow, error) {
	if err := requireIDs("id", requestID); err != nil {
		return nil, err
	}

	fr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("approve follow request %s: %w", requestID, err)
	}

	follow := &model.Follow{FollowerID: fr.RequesterID, FollowedID: fr.TargetID}
	if err := s.follows.Create(ctx, follow); err != nil {
		logger.Error("通过关注请求失败：创建关注失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("approve follow request %s: %w", requestID, err)
	}

	if err := s.requests.Delete(ctx, fr.RequesterID, fr.TargetID); err != nil {
		logger.Error("通过关注请求部分完成：关注已创建，请求未删除",
			zap.String("request_id", requestID),
			zap.String("follow_id", follow.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("approve follow request %s: follow %s created but request not removed: %w", requestID, follow.ID, err)
	}

	logger.Info("关注请求已通过",
		zap.String("request_id", requestID),
		zap.String("requester_id", fr.RequesterID),
		zap.String("target_id", fr.TargetID),
	)
	return follow, nil
}
