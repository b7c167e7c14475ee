// Package mongo stores each board as a single document in the boards
// collection, with a unique index on the board name.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/logger"
)

const boardsCollection = "boards"

type Storage struct {
	client *mongo.Client
	boards *mongo.Collection
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to mongo", "database", cfg.Private.Mongo.Database)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Private.Mongo.Uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Storage{
		client: client,
		boards: client.Database(cfg.Private.Mongo.Database).Collection(boardsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Log.Info("connected to mongo")
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.boards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("boards_name_unique"),
	})
	if err != nil {
		return fmt.Errorf("create boards index: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Cleanup() error {
	return s.client.Disconnect(context.Background())
}
