// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"timebridge/config"

	"github.com/go-redis/redis/v8"
)

// MatchCacheClient is the dedicated client for match-result caching.
var MatchCacheClient *redis.Client

// InitMatchCache initializes the Redis client for match-result caching.
func InitMatchCache() {
	MatchCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMatchCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := MatchCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Match Cache): %v", err)
	}
}

// GetMatchCacheClient returns the Redis client for match-result caching.
func GetMatchCacheClient() *redis.Client {
	if MatchCacheClient == nil {
		InitMatchCache()
	}
	return MatchCacheClient
}
