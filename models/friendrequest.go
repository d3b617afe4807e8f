package models

import "time"

const RequestStatusPending = "pending"

type FriendRequest struct {
	ID         string    `bson:"_id" json:"id"`
	FromUserID string    `bson:"from_user_id" json:"from_user_id"`
	ToUserID   string    `bson:"to_user_id" json:"to_user_id"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// RequestWithUser is a pending request resolved with the counterpart's
// user record: the sender for incoming requests, the recipient for sent ones.
type RequestWithUser struct {
	FriendRequest
	User UserResponse `json:"user"`
}
