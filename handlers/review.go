package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"cafehopper/middleware"
	"cafehopper/models"
	"cafehopper/utils"
)

type CreateReviewRequest struct {
	Comment string         `json:"comment" binding:"required"`
	Ratings models.Ratings `json:"ratings"`
}

func (h *Handler) GetCafeReviews(c *gin.Context) {
	reviews, err := h.Reviews.ForCafe(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	utils.Success(c, reviews)
}

func (h *Handler) GetUserReviews(c *gin.Context) {
	reviews, err := h.Reviews.ByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	utils.Success(c, reviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	review := &models.Review{
		ID:        utils.GenerateUUID(),
		CafeID:    c.Param("id"),
		UserID:    userID,
		Comment:   req.Comment,
		Ratings:   req.Ratings,
		CreatedAt: time.Now(),
	}

	if err := h.Reviews.Add(c.Request.Context(), review); err != nil {
		utils.InternalError(c, "failed to create review")
		return
	}

	utils.Success(c, review)
}
