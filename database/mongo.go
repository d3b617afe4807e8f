package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cafehopper/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect() error {
	client, err := mongo.Connect(options.Client().ApplyURI(config.Cfg.MongoURI))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	DB = client.Database(config.Cfg.MongoDB)

	log.Println("Document store connected successfully")
	return nil
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = Client.Disconnect(ctx)
	}
}

// EnsureIndexes creates the indexes the workflow relies on. Idempotent; safe
// to run at every startup. The unique friendRequests index is what makes
// duplicate pending requests impossible regardless of client-side checks.
func EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "location", Value: 1}},
			},
		},
		"friendRequests": {
			{
				Keys: bson.D{
					{Key: "from_user_id", Value: 1},
					{Key: "to_user_id", Value: 1},
					{Key: "status", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "status", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "from_user_id", Value: 1}, {Key: "status", Value: 1}},
			},
		},
		"reviews": {
			{
				Keys: bson.D{{Key: "cafe_id", Value: 1}, {Key: "created_at", Value: -1}},
			},
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			},
		},
	}

	for collection, models := range indexes {
		if _, err := DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	log.Println("Document store indexes created successfully")
	return nil
}
