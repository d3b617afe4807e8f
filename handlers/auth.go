package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"cafehopper/middleware"
	"cafehopper/models"
	"cafehopper/social"
	"cafehopper/utils"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}
	now := time.Now()

	user := &models.User{
		ID:        utils.GenerateUUID(),
		Username:  req.Username,
		Name:      name,
		Password:  string(hashedPassword),
		Friends:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Social.Users().CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, social.ErrDuplicate) {
			utils.BadRequest(c, "username already exists")
			return
		}
		utils.InternalError(c, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.Social.Users().GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, social.ErrNotFound) {
			utils.Unauthorized(c, "invalid username or password")
			return
		}
		utils.InternalError(c, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func (h *Handler) Logout(c *gin.Context) {
	utils.Success(c, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, err := utils.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, gin.H{"token": token})
}
