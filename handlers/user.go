package handlers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"cafehopper/config"
	"cafehopper/middleware"
	"cafehopper/models"
	"cafehopper/utils"
)

type UpdateUserRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.Social.Users().GetUser(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	utils.Success(c, user.ToResponse())
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Social.Users().GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	utils.Success(c, user.ToResponse())
}

func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Social.Users().UpdateProfile(c.Request.Context(), userID, req.Name, req.Avatar); err != nil {
		storeError(c, err, "failed to update user")
		return
	}

	h.GetCurrentUser(c)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "no file uploaded")
		return
	}
	defer file.Close()

	maxSize := int64(2 * 1024 * 1024)
	if header.Size > maxSize {
		utils.BadRequest(c, "avatar too large (max 2MB)")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if !allowedTypes[mimeType] {
		utils.BadRequest(c, "avatar must be an image (jpeg, png, gif, webp)")
		return
	}

	ext := filepath.Ext(header.Filename)
	filename := utils.GenerateUUID() + ext
	uploadPath := filepath.Join(config.Cfg.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}

	avatarURL := "/files/" + filename
	if err := h.Social.Users().UpdateProfile(c.Request.Context(), userID, "", avatarURL); err != nil {
		storeError(c, err, "failed to update avatar")
		return
	}

	utils.Success(c, gin.H{"avatar": avatarURL})
}

func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "search query is required")
		return
	}

	userID := middleware.GetUserID(c)

	users, err := h.Social.Users().Search(c.Request.Context(), query, userID, 20)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	results := make([]models.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, *users[i].ToResponse())
	}

	utils.Success(c, results)
}
