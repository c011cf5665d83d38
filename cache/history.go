// Package cache keeps per-user listening history in Redis.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// History records the songs a user played most recently, newest first,
// trimmed to a fixed length.
type History struct {
	client *redis.Client
	max    int
}

// NewHistory wraps a Redis client with a maximum history length.
func NewHistory(client *redis.Client, max int) *History {
	return &History{client: client, max: max}
}

func historyKey(userID string) string {
	return fmt.Sprintf("lastplayed:%s", userID)
}

// Push records songID as the most recent play for the user and trims the
// history to the configured maximum.
func (h *History) Push(ctx context.Context, userID, songID string) error {
	key := historyKey(userID)

	pipe := h.client.TxPipeline()
	pipe.LPush(ctx, key, songID)
	pipe.LTrim(ctx, key, 0, int64(h.max-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push last played for user %s: %w", userID, err)
	}
	return nil
}

// Recent returns the user's history, most recent first.
func (h *History) Recent(ctx context.Context, userID string) ([]string, error) {
	ids, err := h.client.LRange(ctx, historyKey(userID), 0, int64(h.max-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read last played for user %s: %w", userID, err)
	}
	return ids, nil
}

// Clear drops the user's history.
func (h *History) Clear(ctx context.Context, userID string) error {
	if err := h.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear last played for user %s: %w", userID, err)
	}
	return nil
}
