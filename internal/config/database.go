package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig() (*MongoDBConfig, error) {
	uri := getenv("MONGO_URI", "")
	if uri == "" {
		return nil, errors.New("MONGO_URI not set")
	}
	return &MongoDBConfig{URI: uri, Database: getenv("MONGO_DATABASE", "meeting_reminder")}, nil
}

// Connect opens and pings a client for config.
func Connect(ctx context.Context, config *MongoDBConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// NewMongoDatabase connects on construction and disconnects when the app stops.
func NewMongoDatabase(lc fx.Lifecycle, config *MongoDBConfig, logger *zap.Logger) (*mongo.Database, error) {
	client, err := Connect(context.Background(), config)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", config.Database))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})
	return client.Database(config.Database), nil
}
