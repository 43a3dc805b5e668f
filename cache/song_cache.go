package cache

import (
	"context"
	"fmt"
	"time"

	"cancionero/logger"

	"github.com/go-redis/redis/v8"
)

// The list endpoint caches its serialized JSON response per duration filter.
// Every mutation invalidates all list entries.

const songListKeyPrefix = "canciones:list:"

// All filter values a list key can be built from; used for invalidation.
var songListFilters = []string{"", "short", "medium", "long"}

func songListKey(filter string) string {
	if filter == "" {
		return songListKeyPrefix + "all"
	}
	return fmt.Sprintf("%s%s", songListKeyPrefix, filter)
}

// GetSongList returns the cached serialized list for a filter, if present.
func GetSongList(ctx context.Context, filter string) ([]byte, bool) {
	if RedisClient == nil {
		return nil, false
	}

	payload, err := RedisClient.Get(ctx, songListKey(filter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Failed to read song list cache", logger.ErrorField(err))
		}
		return nil, false
	}
	return payload, true
}

// SetSongList stores the serialized list for a filter with the given TTL.
// A TTL of zero disables caching.
func SetSongList(ctx context.Context, filter string, payload []byte, ttl time.Duration) {
	if RedisClient == nil || ttl <= 0 {
		return
	}

	if err := RedisClient.Set(ctx, songListKey(filter), payload, ttl).Err(); err != nil {
		logger.Warn("Failed to write song list cache", logger.ErrorField(err))
	}
}

// InvalidateSongLists drops every cached list entry.
func InvalidateSongLists(ctx context.Context) {
	if RedisClient == nil {
		return
	}

	keys := make([]string, 0, len(songListFilters))
	for _, filter := range songListFilters {
		keys = append(keys, songListKey(filter))
	}
	if err := RedisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Failed to invalidate song list cache", logger.ErrorField(err))
	}
}
