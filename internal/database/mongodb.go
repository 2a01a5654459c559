package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sagacious/sagacious/internal/config"
	"github.com/sagacious/sagacious/pkg/logger"
)

// connectAttempts bounds the startup retry loop. The record store cannot
// come up before its database, so startup tolerates the container race.
const connectAttempts = 5

// Connect dials the record-store database and verifies it with a ping,
// retrying with doubling backoff. Caller owns the returned client and
// should Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err := ConnectOnce(ctx, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("database: connect after %d attempts: %w", connectAttempts, lastErr)
}

// ConnectOnce performs a single dial+ping bounded by the configured timeout.
func ConnectOnce(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("database: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: mongo ping: %w", err)
	}
	return client, nil
}
