package handler

import (
	"errors"
	"net/http"
	"time"

	"payroll-directory/internal/models"
	"payroll-directory/internal/repository"
	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the read-only user directory.
type UserHandler struct {
	Users repository.UserRepository
	Log   *zap.Logger
}

func NewUserHandler(users repository.UserRepository, log *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Log: log}
}

// userResp never carries the password hash.
type userResp struct {
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		Email:      u.Email,
		Department: u.Department,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		internalError(c, h.Log, "list users", err)
		return
	}

	items := make([]userResp, 0, len(users))
	for i := range users {
		items = append(items, toUserResp(&users[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		internalError(c, h.Log, "get user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}
