package handler

import (
	"social-system/internal/service"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子处理器
type PostHandler struct {
	service *service.PostService
	metrics *metrics.Metrics
}

// NewPostHandler 创建PostHandler实例
func NewPostHandler(s *service.PostService, m *metrics.Metrics) *PostHandler {
	return &PostHandler{service: s, metrics: m}
}

// CreatePost 发布帖子
// POST /api/posts {"postData": {...}}
func (h *PostHandler) CreatePost(c *gin.Context) {
	var r struct {
		PostData *service.CreatePostRequest `json:"postData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "You must provide post data.")
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), *r.PostData)
	if err != nil {
		fail(c, err, "There was an error saving the post.")
		return
	}

	h.metrics.IncPost()
	response.Created(c, "Your post was created successfully.", post)
}

// GetUserPosts 用户的全部帖子，按发布时间倒序
// GET /api/posts/user/:id
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.service.PostsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the posts.")
		return
	}
	response.Success(c, "Posts retrieved successfully.", posts)
}

// GetPost 单个帖子
// GET /api/posts/single/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the post.")
		return
	}
	response.Success(c, "Post retrieved successfully.", post)
}

// GetRandomPost 随机帖子
// GET /api/posts/random
func (h *PostHandler) GetRandomPost(c *gin.Context) {
	post, err := h.service.RandomPost(c.Request.Context())
	if err != nil {
		fail(c, err, "There was an error retrieving a random post.")
		return
	}
	response.Success(c, "Random post retrieved successfully.", post)
}

// DeletePost 删除帖子
// DELETE /api/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.service.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "There was an error deleting the post.")
		return
	}
	response.Success(c, "Post deleted successfully.", nil)
}
