package handler

import (
	"errors"

	"social-system/internal/service"
	"social-system/pkg/metrics"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
	metrics *metrics.Metrics
}

func NewUserHandler(s *service.UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{service: s, metrics: m}
}

// Register 注册用户
// POST /api/users {"userData": {...}}
func (h *UserHandler) Register(c *gin.Context) {
	var r struct {
		UserData *service.CreateUserRequest `json:"userData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "You must provide user account data.")
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), *r.UserData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrHandleTaken):
			response.InternalError(c, "A user with the provided account handle already exists.", err)
		case errors.Is(err, service.ErrUserExists):
			response.InternalError(c, "A user with the provided account data already exists.", err)
		default:
			response.InternalError(c, "There was an unknown error saving the user.", err)
		}
		return
	}

	h.metrics.IncRegistration()
	response.Created(c, "Your account was registered successfully.", user)
}

// GetUser 按外部身份ID获取用户
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetByExternalAuthID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error retrieving the user.")
		return
	}
	response.Success(c, "User retrieved successfully.", user)
}

// UpdateUser 局部更新用户资料
// PUT /api/users/:id {"userData": {...}}
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var r struct {
		UserData *service.UpdateUserRequest `json:"userData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "You must provide user account data.")
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), *r.UserData)
	if err != nil {
		if errors.Is(err, service.ErrHandleTaken) {
			response.InternalError(c, "A user with the provided account handle already exists.", err)
			return
		}
		fail(c, err, "There was an error updating the user.")
		return
	}
	response.Success(c, "Your account was updated successfully.", user)
}

// HandleInUse 检查账号句柄是否已被占用
// GET /api/users/handle/:id
func (h *UserHandler) HandleInUse(c *gin.Context) {
	taken, err := h.service.HandleInUse(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "There was an error checking the account handle.")
		return
	}
	response.Success(c, "Account handle checked successfully.", taken)
}
