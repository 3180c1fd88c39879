// Package redis implements the key-value store adapter for player and game
// state. Values are JSON documents keyed player:{id} and game:{id}; the
// store itself is treated as opaque get/set/scan storage.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/alliancewars/internal/config"
)

// Key prefixes for the two persisted record kinds.
const (
	playerKeyPrefix = "player:"
	gameKeyPrefix   = "game:"
)

func playerKey(id string) string { return playerKeyPrefix + id }
func gameKey(id string) string   { return gameKeyPrefix + id }

// Client wraps the Redis connection shared by the repositories.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis using the given configuration and verifies the
// connection with a ping.
//
// Precondition: cfg.Addr must be non-empty.
// Postcondition: Returns a connected Client or a non-nil error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return &Client{rdb: rdb}, nil
}

// NewClientFromRedis wraps an existing connection, for tests.
func NewClientFromRedis(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Reset wipes every record in the selected database. Behind the admin
// restart endpoint only.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flushing redis db: %w", err)
	}
	return nil
}
