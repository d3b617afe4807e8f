package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"cafehopper/cafes"
	"cafehopper/models"
	"cafehopper/social"
	"cafehopper/utils"
	"cafehopper/websocket"
)

// ReviewStore is the slice of the review storage the handlers need.
type ReviewStore interface {
	Add(ctx context.Context, review *models.Review) error
	ForCafe(ctx context.Context, cafeID string) ([]models.Review, error)
	ByUser(ctx context.Context, userID string) ([]models.Review, error)
}

type Handler struct {
	Social  *social.Service
	Cafes   *cafes.Store
	Reviews ReviewStore
	Hub     *websocket.Hub
}

func New(svc *social.Service, cafeStore *cafes.Store, reviews ReviewStore, hub *websocket.Hub) *Handler {
	return &Handler{
		Social:  svc,
		Cafes:   cafeStore,
		Reviews: reviews,
		Hub:     hub,
	}
}

// storeError translates workflow sentinel errors to HTTP responses.
func storeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, social.ErrNotFound):
		utils.NotFound(c, "not found")
	case errors.Is(err, social.ErrDuplicate):
		utils.Conflict(c, "already exists")
	case errors.Is(err, social.ErrAlreadyFriends):
		utils.BadRequest(c, "already friends")
	case errors.Is(err, social.ErrSelfRequest):
		utils.BadRequest(c, "cannot add yourself as friend")
	default:
		utils.InternalError(c, fallback)
	}
}
