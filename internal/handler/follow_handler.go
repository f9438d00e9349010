package handler

import (
	"social-system/internal/service"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// FollowHandler 关注关系处理器
type FollowHandler struct {
	service *service.FollowService
	metrics *metrics.Metrics
}

// NewFollowHandler 创建FollowHandler实例
func NewFollowHandler(s *service.FollowService, m *metrics.Metrics) *FollowHandler {
	return &FollowHandler{service: s, metrics: m}
}

// AddFollow 关注
// POST /api/follow {"followerId", "followedId"}
func (h *FollowHandler) AddFollow(c *gin.Context) {
	var r service.FollowRequestBody
	if err := c.ShouldBindJSON(&r); err != nil || r.FollowerID == "" || r.FollowedID == "" {
		response.BadRequest(c, "You must provide a follower and a followed user.")
		return
	}

	follow, err := h.service.AddFollow(c.Request.Context(), r)
	if err != nil {
		fail(c, err, "There was an error following the user.")
		return
	}

	h.metrics.IncFollow()
	response.Created(c, "User followed successfully.", follow)
}

// ListFollows ?followers=<id> 返回粉丝列表，?following=<id> 返回关注列表
// GET /api/follow
func (h *FollowHandler) ListFollows(c *gin.Context) {
	ctx := c.Request.Context()

	if id := c.Query("followers"); id != "" {
		followers, err := h.service.Followers(ctx, id)
		if err != nil {
			fail(c, err, "There was an error retrieving the followers.")
			return
		}
		response.Success(c, "Followers retrieved successfully.", followers)
		return
	}

	if id := c.Query("following"); id != "" {
		following, err := h.service.Following(ctx, id)
		if err != nil {
			fail(c, err, "There was an error retrieving the followed users.")
			return
		}
		response.Success(c, "Followed users retrieved successfully.", following)
		return
	}

	response.BadRequest(c, "You must provide a followers or following user id.")
}

// FollowStatus current 是否关注了 target
// GET /api/follow/status?target=&current=
func (h *FollowHandler) FollowStatus(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a target and a current user.", "current", "target")
	if !ok {
		return
	}
	exists, err := h.service.FollowExists(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		fail(c, err, "There was an error checking the follow status.")
		return
	}
	response.Success(c, "Follow status retrieved successfully.", exists)
}

// RemoveFollow 取消关注
// DELETE /api/follow?following=&follower=
func (h *FollowHandler) RemoveFollow(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a following and a follower user.", "following", "follower")
	if !ok {
		return
	}
	if err := h.service.RemoveFollow(c.Request.Context(), ids[0], ids[1]); err != nil {
		fail(c, err, "There was an error unfollowing the user.")
		return
	}

	h.metrics.IncUnfollow()
	response.Success(c, "User unfollowed successfully.", nil)
}
