package handler

import (
	"social-system/internal/service"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// FollowRequestHandler 关注请求处理器（私密账号）
type FollowRequestHandler struct {
	service *service.FollowRequestService
	metrics *metrics.Metrics
}

// NewFollowRequestHandler 创建FollowRequestHandler实例
func NewFollowRequestHandler(s *service.FollowRequestService, m *metrics.Metrics) *FollowRequestHandler {
	return &FollowRequestHandler{service: s, metrics: m}
}

// AddFollowRequest 发起关注请求
// POST /api/followrequests {"requesterId", "targetId"}
func (h *FollowRequestHandler) AddFollowRequest(c *gin.Context) {
	var r service.FollowRequestCreate
	if err := c.ShouldBindJSON(&r); err != nil || r.RequesterID == "" || r.TargetID == "" {
		response.BadRequest(c, "You must provide a requester and a target user.")
		return
	}

	fr, err := h.service.AddFollowRequest(c.Request.Context(), r)
	if err != nil {
		fail(c, err, "There was an error sending the follow request.")
		return
	}
	response.Created(c, "Follow request sent successfully.", fr)
}

// GetRequestsForUser 发给用户的待处理请求
// GET /api/followrequests/user/:id
func (h *FollowRequestHandler) GetRequestsForUser(c *gin.Context) {
	reqs, err := h.service.RequestsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the follow requests.")
		return
	}
	response.Success(c, "Follow requests retrieved successfully.", reqs)
}

// FollowRequestStatus requester 是否有发给 target 的待处理请求
// GET /api/followrequests/status?requester=&target=
func (h *FollowRequestHandler) FollowRequestStatus(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a requester and a target user.", "requester", "target")
	if !ok {
		return
	}
	exists, err := h.service.FollowRequestExists(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		fail(c, err, "There was an error checking the follow request status.")
		return
	}
	response.Success(c, "Follow request status retrieved successfully.", exists)
}

// Approve 通过关注请求
// GET /api/followrequests/approve/:id
func (h *FollowRequestHandler) Approve(c *gin.Context) {
	follow, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error approving the follow request.")
		return
	}

	h.metrics.IncApproval()
	response.Success(c, "Follow request approved successfully.", follow)
}

// RemoveFollowRequest 撤回或拒绝关注请求
// DELETE /api/followrequests?requester=&target=
func (h *FollowRequestHandler) RemoveFollowRequest(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a requester and a target user.", "requester", "target")
	if !ok {
		return
	}
	if err := h.service.RemoveFollowRequest(c.Request.Context(), ids[0], ids[1]); err != nil {
		fail(c, err, "There was an error removing the follow request.")
		return
	}
	response.Success(c, "Follow request removed successfully.", nil)
}
