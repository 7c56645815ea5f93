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

// AuthHandler serves registration and login.
type AuthHandler struct {
	Users      repository.UserRepository
	Tokens     *util.TokenService
	BcryptCost int
	Log        *zap.Logger
}

func NewAuthHandler(users repository.UserRepository, tokens *util.TokenService, bcryptCost int, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Users:      users,
		Tokens:     tokens,
		BcryptCost: bcryptCost,
		Log:        log,
	}
}

// ---------- register ----------

type registerReq struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if errors.Is(err, util.ErrPasswordTooLong) {
		util.Error(c, http.StatusBadRequest, "Password must be at most 72 bytes")
		return
	}
	if err != nil {
		internalError(c, h.Log, "hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Department:   req.Department,
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}
	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			util.Error(c, http.StatusBadRequest, "User already exists")
			return
		}
		internalError(c, h.Log, "create user", err)
		return
	}

	h.Log.Info("user registered", zap.String("email", user.Email), zap.String("role", user.Role))
	c.String(http.StatusCreated, "User registered successfully")
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "User not found")
			return
		}
		internalError(c, h.Log, "find user", err)
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := h.Tokens.Issue(util.Identity{Email: user.Email, Role: user.Role})
	if err != nil {
		internalError(c, h.Log, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// internalError logs err and answers 500 without leaking details.
func internalError(c *gin.Context, log *zap.Logger, op string, err error) {
	log.Error(op+" failed", zap.String("path", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	util.Error(c, http.StatusInternalServerError, "Internal server error")
}
