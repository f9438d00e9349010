package handler

import (
	"social-system/internal/service"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 个人主页
type ProfileHandler struct {
	service *service.UserService
}

func NewProfileHandler(s *service.UserService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// GetProfile 公开资料，用户不存在时 data 为 null
// GET /api/profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the profile.")
		return
	}
	response.Success(c, "Profile retrieved successfully.", profile)
}

// GetCounts 帖子数、粉丝数、关注数
// GET /api/profile/counts/:id
func (h *ProfileHandler) GetCounts(c *gin.Context) {
	counts, err := h.service.ProfileCounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the profile counts.")
		return
	}
	response.Success(c, "Profile counts retrieved successfully.", counts)
}
