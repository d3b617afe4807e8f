// Package social implements the presence and social-graph workflow: the user
// directory over the document store, the friend-request lifecycle, and the
// "studying here" presence toggle with its derived views.
package social

import (
	"context"
	"errors"

	"cafehopper/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrAlreadyFriends = errors.New("already friends")
	ErrSelfRequest    = errors.New("cannot add yourself as friend")
)

// UserDirectory reads and updates individual user records against the
// document store. All calls are remote and never retried; failures surface
// to the caller as-is.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id, name, avatar string) error
	UpdateLocation(ctx context.Context, id string, cafeID *string) error
	// UpdateFriends overwrites the user's friend id list wholesale. Normal
	// friendship changes go through FriendGraph; this is the directory's raw
	// write, for repair tooling and data loads.
	UpdateFriends(ctx context.Context, id string, friends []string) error
	Search(ctx context.Context, q, excludeID string, limit int) ([]models.User, error)
	UsersAt(ctx context.Context, cafeID string) ([]models.User, error)
}

// RequestStore persists directed friend requests. Create must reject a second
// pending request for the same ordered (from, to) pair with ErrDuplicate;
// Delete of an absent id is a no-op success.
type RequestStore interface {
	Create(ctx context.Context, req *models.FriendRequest) error
	Get(ctx context.Context, id string) (*models.FriendRequest, error)
	Delete(ctx context.Context, id string) error
	PendingTo(ctx context.Context, userID string) ([]models.FriendRequest, error)
	PendingFrom(ctx context.Context, userID string) ([]models.FriendRequest, error)
}

// FriendGraph applies the symmetric friendship mutations. Both user records
// and the request record must change together or not at all.
type FriendGraph interface {
	// CommitMutualFriendship adds each user to the other's friend list and
	// deletes the originating request in a single transaction.
	CommitMutualFriendship(ctx context.Context, requestID, userA, userB string) error
	// RemoveFriendship removes each user from the other's friend list.
	RemoveFriendship(ctx context.Context, userA, userB string) error
}
