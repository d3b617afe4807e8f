package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cafehopper/models"
	"cafehopper/social"
)

// UserStore implements social.UserDirectory over the users collection.
type UserStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{
		collection: db.Collection("users"),
		logger:     slog.Default(),
	}
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.ErrorContext(ctx, "failed to load user",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, handleError(err, "user")
	}

	// A user document without a display name is corrupt, not a valid
	// minimal user. Report it as missing.
	if user.Name == "" {
		s.logger.ErrorContext(ctx, "user document missing required name field",
			slog.String("user_id", id),
		)
		return nil, social.ErrNotFound
	}

	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, handleError(err, "user")
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
	}
	return handleError(err, "user")
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if avatar != "" {
		set["avatar"] = avatar
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return handleError(err, "user")
	}
	if result.MatchedCount == 0 {
		return social.ErrNotFound
	}
	return nil
}

func (s *UserStore) UpdateLocation(ctx context.Context, id string, cafeID *string) error {
	update := bson.M{
		"$unset": bson.M{"location": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	if cafeID != nil {
		update = bson.M{
			"$set": bson.M{"location": *cafeID, "updated_at": time.Now()},
		}
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update user location",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return handleError(err, "user")
	}
	if result.MatchedCount == 0 {
		return social.ErrNotFound
	}
	return nil
}

// UpdateFriends overwrites the friend id list. Paired friendship updates go
// through Graph; this single-document write backs the directory contract.
func (s *UserStore) UpdateFriends(ctx context.Context, id string, friends []string) error {
	if friends == nil {
		friends = []string{}
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"friends": friends, "updated_at": time.Now()},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update user friends",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return handleError(err, "user")
	}
	if result.MatchedCount == 0 {
		return social.ErrNotFound
	}
	return nil
}

func (s *UserStore) Search(ctx context.Context, q, excludeID string, limit int) ([]models.User, error) {
	pattern := "^" + escapeRegex(q)
	filter := bson.M{
		"_id": bson.M{"$ne": excludeID},
		"$or": bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"username": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, handleError(err, "users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, handleError(err, "users")
	}
	return users, nil
}

func (s *UserStore) UsersAt(ctx context.Context, cafeID string) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"location": cafeID})
	if err != nil {
		return nil, handleError(err, "users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, handleError(err, "users")
	}
	return users, nil
}

// escapeRegex quotes the characters that are significant in a BSON regex so
// user input is matched literally.
func escapeRegex(s string) string {
	const special = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(special); j++ {
			if s[i] == special[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
