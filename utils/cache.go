// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"buskpod/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// CacheAuthToken stores a token hash for the given subject so that revocation
// takes effect immediately across requests.
func CacheAuthToken(subjectID, tokenHash string, ttl time.Duration) error {
	ctx := context.Background()
	return GetAuthCacheClient().Set(ctx, AuthCachePrefix+subjectID, tokenHash, ttl).Err()
}

// GetCachedAuthToken returns the cached token hash for a subject, or "" when absent.
func GetCachedAuthToken(subjectID string) string {
	ctx := context.Background()
	val, err := GetAuthCacheClient().Get(ctx, AuthCachePrefix+subjectID).Result()
	if err != nil {
		return ""
	}
	return val
}

// RevokeCachedAuthToken removes the cached token hash for a subject.
func RevokeCachedAuthToken(subjectID string) error {
	ctx := context.Background()
	return GetAuthCacheClient().Del(ctx, AuthCachePrefix+subjectID).Err()
}
