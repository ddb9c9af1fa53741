package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirePortal/internal/auth"
	"hirePortal/internal/database"
)

var validRoles = map[string]bool{
	"Admin": true,
	"HR":    true,
}

// UserHandler 暴露后台账号管理端点，仅对 Admin 开放。
type UserHandler struct {
	store  database.UserStore
	logger *slog.Logger
}

// NewUserHandler 构造账号处理器。
func NewUserHandler(store database.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{store: store, logger: logger}
}

// List 返回全部账号，不含密码哈希。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list users failed", slog.Any("error", err))
		Internal(c, "failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
}

// Create 新建账号，用户名不可重复。
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !validRoles[req.Role] {
		BadRequest(c, "role must be Admin or HR")
		return
	}

	ctx := c.Request.Context()
	logger := loggerFromContext(c).With(slog.String("target_user", req.Username))

	exists, err := h.store.Exists(ctx, req.Username)
	if err != nil {
		logger.Error("user lookup failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}
	if exists {
		BadRequest(c, "Username already exists")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}

	user, err := h.store.Create(ctx, database.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         req.Role,
	})
	if err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}

	logger.Info("user created", slog.String("role", user.Role))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole 修改账号角色，这是更新接口允许的唯一字段。
func (h *UserHandler) UpdateRole(c *gin.Context) {
	username := c.Param("username")

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "role is required")
		return
	}
	if !validRoles[req.Role] {
		BadRequest(c, "role must be Admin or HR")
		return
	}

	user, err := h.store.UpdateRole(c.Request.Context(), username, req.Role)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "User not found")
			return
		}
		loggerFromContext(c).Error("update user role failed", slog.Any("error", err))
		Internal(c, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// Delete 删除账号。不允许删除当前登录账号。
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")

	if current, ok := usernameFromContext(c); ok && current == username {
		BadRequest(c, "cannot delete your own account")
		return
	}

	existed, err := h.store.Delete(c.Request.Context(), username)
	if err != nil {
		loggerFromContext(c).Error("delete user failed", slog.Any("error", err))
		Internal(c, "failed to delete user")
		return
	}
	if !existed {
		NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
