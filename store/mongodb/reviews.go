package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cafehopper/models"
)

// ReviewStore persists cafe reviews in the reviews collection.
type ReviewStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{
		collection: db.Collection("reviews"),
		logger:     slog.Default(),
	}
}

func (s *ReviewStore) Add(ctx context.Context, review *models.Review) error {
	_, err := s.collection.InsertOne(ctx, review)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add review",
			slog.String("cafe_id", review.CafeID),
			slog.String("user_id", review.UserID),
			slog.String("error", err.Error()),
		)
	}
	return handleError(err, "review")
}

func (s *ReviewStore) ForCafe(ctx context.Context, cafeID string) ([]models.Review, error) {
	return s.find(ctx, bson.M{"cafe_id": cafeID})
}

func (s *ReviewStore) ByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *ReviewStore) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, handleError(err, "reviews")
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, handleError(err, "reviews")
	}
	return reviews, nil
}
