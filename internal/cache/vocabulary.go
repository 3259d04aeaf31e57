// Package cache stores facet vocabularies in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/overheid-search/internal/domain"
)

const (
	keyPrefix  = "overheid:vocab:"
	DefaultTTL = time.Hour
)

// VocabularyCache is a TTL cache of domain.Vocabulary values.
type VocabularyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVocabularyCache wraps an open Redis client.
func NewVocabularyCache(client *redis.Client, ttl time.Duration) *VocabularyCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &VocabularyCache{client: client, ttl: ttl}
}

// Key derives the Redis key of a vocabulary lookup. The index stays
// readable; the scope is hashed.
func Key(index, collection, documentType string) string {
	sum := sha256.Sum256([]byte("index=" + index + "&collection=" + collection + "&documentType=" + documentType))
	return keyPrefix + index + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached vocabulary and whether it was found.
func (c *VocabularyCache) Get(ctx context.Context, index, collection, documentType string) (*domain.Vocabulary, bool, error) {
	raw, err := c.client.Get(ctx, Key(index, collection, documentType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get vocabulary %s: %w", index, err)
	}

	var v domain.Vocabulary
	if err = json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("decode vocabulary %s: %w", index, err)
	}
	return &v, true, nil
}

// Set stores v under its scope for the cache TTL.
func (c *VocabularyCache) Set(ctx context.Context, v *domain.Vocabulary) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode vocabulary %s: %w", v.Index, err)
	}
	if err = c.client.Set(ctx, Key(v.Index, v.Collection, v.DocumentType), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set vocabulary %s: %w", v.Index, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *VocabularyCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
