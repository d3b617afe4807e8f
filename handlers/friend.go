package handlers

import (
	"github.com/gin-gonic/gin"

	"cafehopper/middleware"
	"cafehopper/models"
	"cafehopper/social"
	"cafehopper/utils"
)

type FriendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

// GetFriends resolves the caller's friend list and splits it into the
// "studying now" and "not studying" views the friends screen shows.
func (h *Handler) GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	friends, err := h.Social.ListFriends(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	studying, notStudying := social.Partition(friends)

	utils.Success(c, gin.H{
		"friends":      toResponses(friends),
		"studying":     toResponses(studying),
		"not_studying": toResponses(notStudying),
	})
}

func (h *Handler) GetFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.Social.FriendRequests(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	if requests == nil {
		requests = []models.RequestWithUser{}
	}
	utils.Success(c, requests)
}

func (h *Handler) GetSentFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.Social.SentFriendRequests(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	if requests == nil {
		requests = []models.RequestWithUser{}
	}
	utils.Success(c, requests)
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	request, accepted, err := h.Social.SendRequest(c.Request.Context(), userID, req.UserID)
	if err != nil {
		storeError(c, err, "failed to send friend request")
		return
	}

	if accepted {
		utils.Success(c, gin.H{"message": "friend request accepted", "request": request})
		return
	}
	utils.Success(c, gin.H{"message": "friend request sent", "request": request})
}

func (h *Handler) CancelFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Social.CancelRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		storeError(c, err, "failed to cancel friend request")
		return
	}

	utils.Success(c, nil)
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Social.AcceptRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		storeError(c, err, "failed to accept friend request")
		return
	}

	utils.Success(c, gin.H{"message": "friend request accepted"})
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Social.RemoveFriend(c.Request.Context(), userID, c.Param("user_id")); err != nil {
		storeError(c, err, "failed to remove friend")
		return
	}

	utils.Success(c, nil)
}

func toResponses(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToResponse())
	}
	return out
}
