package handlers

import (
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"cafehopper/middleware"
	"cafehopper/models"
	"cafehopper/utils"
)

func (h *Handler) GetCafes(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		cafeList []models.Cafe
		err      error
	)
	if q := c.Query("q"); q != "" {
		cafeList, err = h.Cafes.Search(ctx, q, 50)
	} else {
		cafeList, err = h.Cafes.All(ctx)
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if cafeList == nil {
		cafeList = []models.Cafe{}
	}
	utils.Success(c, cafeList)
}

func (h *Handler) GetCafe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "invalid cafe id")
		return
	}

	cafe, err := h.Cafes.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "database error")
		return
	}

	utils.Success(c, cafe)
}

func (h *Handler) GetNearbyCafes(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.BadRequest(c, "invalid latitude")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		utils.BadRequest(c, "invalid longitude")
		return
	}

	radius := 2.0
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			utils.BadRequest(c, "invalid radius")
			return
		}
	}

	cafeList, err := h.Cafes.Nearby(c.Request.Context(), lat, lon, radius, 50)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if cafeList == nil {
		cafeList = []models.Cafe{}
	}
	utils.Success(c, cafeList)
}

type hereEntry struct {
	models.UserResponse
	IsFriend bool `json:"is_friend"`
}

// GetCafeUsers lists everyone currently checked in at the cafe, flagging the
// caller's friends.
func (h *Handler) GetCafeUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	cafeID := c.Param("id")

	users, err := h.Social.Users().UsersAt(c.Request.Context(), cafeID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	var friends []string
	if me, err := h.Social.Users().GetUser(c.Request.Context(), userID); err == nil {
		friends = me.Friends
	}

	here := make([]hereEntry, 0, len(users))
	for i := range users {
		here = append(here, hereEntry{
			UserResponse: *users[i].ToResponse(),
			IsFriend:     slices.Contains(friends, users[i].ID),
		})
	}

	utils.Success(c, here)
}
