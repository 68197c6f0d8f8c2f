package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis() {
	// Get Redis URL from environment, fallback to localhost for development
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("⚠️  REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("🔧 Redis initialized with address:", redisURL)
}

// CacheGet fetches a cached payload; a miss or any redis failure returns
// false so callers fall through to the store.
func CacheGet(ctx context.Context, key string) ([]byte, bool) {
	if Redis == nil {
		return nil, false
	}
	b, err := Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// CacheSet stores a payload with a TTL, best effort.
func CacheSet(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if Redis == nil {
		return
	}
	Redis.Set(ctx, key, value, ttl)
}

// CacheDel drops keys, best effort. Used to invalidate the directory
// listing after availability upserts and verification toggles.
func CacheDel(ctx context.Context, keys ...string) {
	if Redis == nil || len(keys) == 0 {
		return
	}
	Redis.Del(ctx, keys...)
}
