// Package cache provides a Redis caching decorator for the review model
// collaborator.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"codesage_backend/internal/feature/review/usecase"
)

// CachingReviewer decorates a Reviewer with Redis caching keyed on a digest
// of the prompt. Identical submissions skip the model call entirely.
type CachingReviewer struct {
	inner     usecase.Reviewer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingReviewer implements Reviewer.
var _ usecase.Reviewer = (*CachingReviewer)(nil)

// NewCachingReviewer decorates a Reviewer with Redis caching.
// If ttl is 0, it defaults to one hour. If namespace is empty, it uses
// "reviews". A nil client disables caching entirely.
func NewCachingReviewer(rdb *redis.Client, ttl time.Duration, inner usecase.Reviewer, namespace string) *CachingReviewer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "reviews"
	}
	return &CachingReviewer{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Complete returns the cached model output for this prompt when present,
// falling back to the wrapped Reviewer and storing its answer best effort.
func (c *CachingReviewer) Complete(ctx context.Context, prompt string) (string, error) {
	// Bypass cache if Redis is not configured.
	if c.rdb == nil {
		return c.inner.Complete(ctx, prompt)
	}

	key := c.cacheKey(prompt)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		// A corrupt entry would be re-served until TTL otherwise.
		if _, err := usecase.ParseReviewResult(string(b)); err == nil {
			return string(b), nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Best effort: a cache write failure never fails the request. Outputs
	// that fail the schema are not cached at all.
	if _, err := usecase.ParseReviewResult(out); err == nil {
		_ = c.rdb.Set(ctx, key, out, c.ttl).Err()
	}

	return out, nil
}

// cacheKey derives the Redis key from the prompt digest.
func (c *CachingReviewer) cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%s:%s", c.namespace, hex.EncodeToString(sum[:]))
}
