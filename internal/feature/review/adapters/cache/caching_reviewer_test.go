package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

// mockReviewer is a mock implementation of the Reviewer interface.
type mockReviewer struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
	calls      int
}

func (m *mockReviewer) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "", nil
}

func promptKey(namespace, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// validPayload satisfies the review schema; only such payloads are cached.
const validPayload = `{"suggestions":["s"],"explanation":"e","quality_score":70,"best_practices":["b"]}`

func TestNewCachingReviewer_Defaults(t *testing.T) {
	c := NewCachingReviewer(nil, 0, &mockReviewer{}, "")

	if c.ttl != time.Hour {
		t.Errorf("expected default TTL of one hour, got %v", c.ttl)
	}
	if c.namespace != "reviews" {
		t.Errorf("expected default namespace, got %q", c.namespace)
	}
}

func TestCachingReviewer_Complete(t *testing.T) {
	t.Run("nil client bypasses the cache", func(t *testing.T) {
		inner := &mockReviewer{
			completeFn: func(ctx context.Context, prompt string) (string, error) {
				return "model output", nil
			},
		}
		c := NewCachingReviewer(nil, time.Hour, inner, "reviews")

		out, err := c.Complete(context.Background(), "prompt")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "model output" || inner.calls != 1 {
			t.Errorf("expected passthrough to inner reviewer")
		}
	})

	t.Run("cache hit skips the model", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(promptKey("reviews", "prompt")).SetVal(validPayload)

		inner := &mockReviewer{}
		c := NewCachingReviewer(rdb, time.Hour, inner, "reviews")

		out, err := c.Complete(context.Background(), "prompt")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != validPayload {
			t.Errorf("expected cached output, got %q", out)
		}
		if inner.calls != 0 {
			t.Errorf("model should not be called on a cache hit")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations: %v", err)
		}
	})

	t.Run("cache miss calls the model and stores the answer", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := promptKey("reviews", "prompt")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, validPayload, time.Hour).SetVal("OK")

		inner := &mockReviewer{
			completeFn: func(ctx context.Context, prompt string) (string, error) {
				return validPayload, nil
			},
		}
		c := NewCachingReviewer(rdb, time.Hour, inner, "reviews")

		out, err := c.Complete(context.Background(), "prompt")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != validPayload || inner.calls != 1 {
			t.Errorf("expected exactly one model call, got %d", inner.calls)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations: %v", err)
		}
	})

	t.Run("corrupt cached entry is evicted and the model called", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := promptKey("reviews", "prompt")
		mock.ExpectGet(key).SetVal("I cannot review this code.")
		mock.ExpectDel(key).SetVal(1)
		mock.ExpectSet(key, validPayload, time.Hour).SetVal("OK")

		inner := &mockReviewer{
			completeFn: func(ctx context.Context, prompt string) (string, error) {
				return validPayload, nil
			},
		}
		c := NewCachingReviewer(rdb, time.Hour, inner, "reviews")

		out, err := c.Complete(context.Background(), "prompt")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != validPayload || inner.calls != 1 {
			t.Errorf("expected the model to replace the corrupt entry")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations: %v", err)
		}
	})

	t.Run("output failing the schema is returned but not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(promptKey("reviews", "prompt")).RedisNil()

		inner := &mockReviewer{
			completeFn: func(ctx context.Context, prompt string) (string, error) {
				return "not json", nil
			},
		}
		c := NewCachingReviewer(rdb, time.Hour, inner, "reviews")

		out, err := c.Complete(context.Background(), "prompt")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "not json" {
			t.Errorf("raw output should pass through, got %q", out)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations: %v", err)
		}
	})

	t.Run("model failure is not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(promptKey("reviews", "prompt")).RedisNil()

		inner := &mockReviewer{
			completeFn: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("model down")
			},
		}
		c := NewCachingReviewer(rdb, time.Hour, inner, "reviews")

		_, err := c.Complete(context.Background(), "prompt")

		if err == nil {
			t.Fatal("expected error from inner reviewer")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations: %v", err)
		}
	})
}
