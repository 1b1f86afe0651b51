// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"advoqat/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (lawyer directory, misc lookups).
	CacheClient *redis.Client
	// JourneyCacheClient is the dedicated client for persisted booking journeys.
	JourneyCacheClient *redis.Client
	// AIContextCacheClient is the dedicated client for assistant conversation context.
	AIContextCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients up front.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	JourneyCacheClient = newRedisClient(config.AppConfig.RedisJourneyDB)
	AIContextCacheClient = newRedisClient(config.AppConfig.RedisAIDB)
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// GetJourneyCacheClient returns the Redis client holding booking journeys.
func GetJourneyCacheClient() *redis.Client {
	if JourneyCacheClient == nil {
		JourneyCacheClient = newRedisClient(config.AppConfig.RedisJourneyDB)
	}
	return JourneyCacheClient
}

// GetAIContextCacheClient returns the Redis client for assistant context.
func GetAIContextCacheClient() *redis.Client {
	if AIContextCacheClient == nil {
		AIContextCacheClient = newRedisClient(config.AppConfig.RedisAIDB)
	}
	return AIContextCacheClient
}
