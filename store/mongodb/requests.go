package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cafehopper/models"
)

// RequestStore implements social.RequestStore over the friendRequests
// collection. The at-most-one-pending rule per ordered (from, to) pair is
// enforced by a compound unique index, not by a read-before-write check.
type RequestStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{
		collection: db.Collection("friendRequests"),
		logger:     slog.Default(),
	}
}

func (s *RequestStore) Create(ctx context.Context, req *models.FriendRequest) error {
	_, err := s.collection.InsertOne(ctx, req)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		s.logger.ErrorContext(ctx, "failed to create friend request",
			slog.String("from_user_id", req.FromUserID),
			slog.String("to_user_id", req.ToUserID),
			slog.String("error", err.Error()),
		)
	}
	return handleError(err, "friend request")
}

func (s *RequestStore) Get(ctx context.Context, id string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		return nil, handleError(err, "friend request")
	}
	return &req, nil
}

// Delete removes a request. Deleting an id that is already gone is a
// success; the store's delete semantics make cancel idempotent.
func (s *RequestStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete friend request",
			slog.String("request_id", id),
			slog.String("error", err.Error()),
		)
	}
	return handleError(err, "friend request")
}

func (s *RequestStore) PendingTo(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.find(ctx, bson.M{"to_user_id": userID, "status": models.RequestStatusPending})
}

func (s *RequestStore) PendingFrom(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.find(ctx, bson.M{"from_user_id": userID, "status": models.RequestStatusPending})
}

func (s *RequestStore) find(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, handleError(err, "friend requests")
	}
	defer cursor.Close(ctx)

	var reqs []models.FriendRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, handleError(err, "friend requests")
	}
	return reqs, nil
}
