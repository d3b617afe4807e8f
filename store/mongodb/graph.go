package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Graph implements social.FriendGraph. The two-sided friend-list writes and
// the request deletion run inside one multi-document transaction, so a rejected
// write cannot leave the graph asymmetric.
type Graph struct {
	client   *mongo.Client
	users    *mongo.Collection
	requests *mongo.Collection
	logger   *slog.Logger
}

func NewGraph(client *mongo.Client, db *mongo.Database) *Graph {
	return &Graph{
		client:   client,
		users:    db.Collection("users"),
		requests: db.Collection("friendRequests"),
		logger:   slog.Default(),
	}
}

func (g *Graph) CommitMutualFriendship(ctx context.Context, requestID, userA, userB string) error {
	err := g.withTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
			_, err := g.users.UpdateOne(txCtx,
				bson.M{"_id": pair[0]},
				bson.M{
					"$addToSet": bson.M{"friends": pair[1]},
					"$set":      bson.M{"updated_at": now},
				},
			)
			if err != nil {
				return fmt.Errorf("add friend %s to %s: %w", pair[1], pair[0], err)
			}
		}

		if _, err := g.requests.DeleteOne(txCtx, bson.M{"_id": requestID}); err != nil {
			return fmt.Errorf("delete request %s: %w", requestID, err)
		}
		return nil
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to commit mutual friendship",
			slog.String("request_id", requestID),
			slog.String("user_a", userA),
			slog.String("user_b", userB),
			slog.String("error", err.Error()),
		)
	}
	return err
}

func (g *Graph) RemoveFriendship(ctx context.Context, userA, userB string) error {
	err := g.withTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
			_, err := g.users.UpdateOne(txCtx,
				bson.M{"_id": pair[0]},
				bson.M{
					"$pull": bson.M{"friends": pair[1]},
					"$set":  bson.M{"updated_at": now},
				},
			)
			if err != nil {
				return fmt.Errorf("remove friend %s from %s: %w", pair[1], pair[0], err)
			}
		}
		return nil
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to remove friendship",
			slog.String("user_a", userA),
			slog.String("user_b", userB),
			slog.String("error", err.Error()),
		)
	}
	return err
}

func (g *Graph) withTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	session, err := g.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		return nil, fn(txCtx)
	})
	return err
}
