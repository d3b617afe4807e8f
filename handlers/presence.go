package handlers

import (
	"github.com/gin-gonic/gin"

	"cafehopper/middleware"
	"cafehopper/utils"
	"cafehopper/websocket"
)

type CheckInRequest struct {
	CafeID string `json:"cafe_id" binding:"required"`
}

// CheckIn marks the caller as studying at a cafe. The cafe id is taken as
// given; the listings snapshot is not consulted.
func (h *Handler) CheckIn(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Social.CheckIn(c.Request.Context(), userID, req.CafeID); err != nil {
		storeError(c, err, "failed to check in")
		return
	}

	h.notifyPresence(c, userID, &req.CafeID)
	utils.Success(c, gin.H{"location": req.CafeID})
}

func (h *Handler) CheckOut(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Social.CheckOut(c.Request.Context(), userID); err != nil {
		storeError(c, err, "failed to check out")
		return
	}

	h.notifyPresence(c, userID, nil)
	utils.Success(c, gin.H{"location": nil})
}

func (h *Handler) notifyPresence(c *gin.Context, userID string, cafeID *string) {
	if h.Hub == nil {
		return
	}

	user, err := h.Social.Users().GetUser(c.Request.Context(), userID)
	if err != nil || len(user.Friends) == 0 {
		return
	}

	h.Hub.NotifyPresence(user.Friends, websocket.PresenceEvent{
		UserID: userID,
		Name:   user.Name,
		CafeID: cafeID,
	})
}
