package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TranslationCache stores resolved translations in Redis so independent
// instances share one outbound translation per (question, language).
// Entries are stored as: HSET translation:{questionID} {language} {text}.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTranslationCache(client *redis.Client, ttl time.Duration) *TranslationCache {
	return &TranslationCache{client: client, ttl: ttl}
}

func (c *TranslationCache) Get(ctx context.Context, questionID int, language string) (string, bool) {
	text, err := c.client.HGet(ctx, c.key(questionID), language).Result()
	if err != nil || text == "" {
		return "", false
	}
	return text, true
}

func (c *TranslationCache) Set(ctx context.Context, questionID int, language, text string) {
	key := c.key(questionID)
	// Best-effort; the resolver treats a failed write as a future cache miss.
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, language, text)
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (c *TranslationCache) key(questionID int) string {
	return "translation:" + strconv.Itoa(questionID)
}
