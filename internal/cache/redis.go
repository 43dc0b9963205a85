package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeepURLDB tells Connect to use the database index given in the URL.
const KeepURLDB = -1

// Connect opens the Redis client that backs the session store. A db of zero
// or more selects that logical database instead of the one in redisURL, so
// sessions can share a Redis instance with other data.
func Connect(ctx context.Context, redisURL string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	if db >= 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s (db %d): %w", opts.Addr, opts.DB, err)
	}

	return client, nil
}
