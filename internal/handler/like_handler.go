package handler

import (
	"social-system/internal/service"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// LikeHandler 点赞处理器
type LikeHandler struct {
	service *service.LikeService
	metrics *metrics.Metrics
}

// NewLikeHandler 创建LikeHandler实例
func NewLikeHandler(s *service.LikeService, m *metrics.Metrics) *LikeHandler {
	return &LikeHandler{service: s, metrics: m}
}

// AddLike 点赞
// POST /api/likes {"likerId", "postId"}
func (h *LikeHandler) AddLike(c *gin.Context) {
	var r service.LikeRequestBody
	if err := c.ShouldBindJSON(&r); err != nil || r.LikerID == "" || r.PostID == "" {
		response.BadRequest(c, "You must provide a liker and a post.")
		return
	}

	like, err := h.service.AddLike(c.Request.Context(), r)
	if err != nil {
		fail(c, err, "There was an error liking the post.")
		return
	}

	h.metrics.IncLike()
	response.Created(c, "Post liked successfully.", like)
}

// ListLikes ?post=<id> 返回帖子的点赞，?user=<id> 返回用户的点赞
// GET /api/likes
func (h *LikeHandler) ListLikes(c *gin.Context) {
	ctx := c.Request.Context()

	if id := c.Query("post"); id != "" {
		likes, err := h.service.LikesByPost(ctx, id)
		if err != nil {
			fail(c, err, "There was an error retrieving the likes.")
			return
		}
		response.Success(c, "Likes retrieved successfully.", likes)
		return
	}

	if id := c.Query("user"); id != "" {
		likes, err := h.service.LikesByUser(ctx, id)
		if err != nil {
			fail(c, err, "There was an error retrieving the likes.")
			return
		}
		response.Success(c, "Likes retrieved successfully.", likes)
		return
	}

	response.BadRequest(c, "You must provide a post or user id.")
}

// LikeStatus liker 是否赞过 post
// GET /api/likes/status?liker=&post=
func (h *LikeHandler) LikeStatus(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a liker and a post.", "liker", "post")
	if !ok {
		return
	}
	exists, err := h.service.LikeExists(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		fail(c, err, "There was an error checking the like status.")
		return
	}
	response.Success(c, "Like status retrieved successfully.", exists)
}

// CountLikes 帖子点赞数
// GET /api/likes/count/:id
func (h *LikeHandler) CountLikes(c *gin.Context) {
	n, err := h.service.CountByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error counting the likes.")
		return
	}
	response.Success(c, "Like count retrieved successfully.", n)
}

// RemoveLike 取消点赞
// DELETE /api/likes?liker=&post=
func (h *LikeHandler) RemoveLike(c *gin.Context) {
	ids, ok := requireQuery(c, "You must provide a liker and a post.", "liker", "post")
	if !ok {
		return
	}
	if err := h.service.RemoveLike(c.Request.Context(), ids[0], ids[1]); err != nil {
		fail(c, err, "There was an error unliking the post.")
		return
	}

	h.metrics.IncUnlike()
	response.Success(c, "Post unliked successfully.", nil)
}
