package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDraftStore implements DraftStore on Redis hashes: one hash for
// structured step fields, one for inlined file blobs, plus a SETNX key as
// the submit lock. Everything carries the same TTL so abandoned drafts
// expire together.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a Redis-backed draft store.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

var _ DraftStore = (*RedisDraftStore)(nil)

func fieldsKey(session string) string { return "wizard:" + session + ":fields" }
func filesKey(session string) string  { return "wizard:" + session + ":files" }
func lockKey(session string) string   { return "wizard:" + session + ":submitting" }

func (s *RedisDraftStore) GetField(ctx context.Context, session, key string) (string, error) {
	value, err := s.client.HGet(ctx, fieldsKey(session), key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read draft field %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisDraftStore) SetField(ctx context.Context, session, key, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, fieldsKey(session), key, value)
	pipe.Expire(ctx, fieldsKey(session), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write draft field %s: %w", key, err)
	}
	return nil
}

func (s *RedisDraftStore) DeleteField(ctx context.Context, session, key string) error {
	if err := s.client.HDel(ctx, fieldsKey(session), key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft field %s: %w", key, err)
	}
	return nil
}

func (s *RedisDraftStore) GetFile(ctx context.Context, session, kind string) (string, error) {
	value, err := s.client.HGet(ctx, filesKey(session), kind).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read draft file %s: %w", kind, err)
	}
	return value, nil
}

func (s *RedisDraftStore) SetFile(ctx context.Context, session, kind, encoded string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, filesKey(session), kind, encoded)
	pipe.Expire(ctx, filesKey(session), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write draft file %s: %w", kind, err)
	}
	return nil
}

func (s *RedisDraftStore) Files(ctx context.Context, session string) (map[string]string, error) {
	files, err := s.client.HGetAll(ctx, filesKey(session)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read draft files: %w", err)
	}
	return files, nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, fieldsKey(session), filesKey(session), lockKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) AcquireSubmitLock(ctx context.Context, session string) (bool, error) {
	// Lock expires on its own in case the process dies mid-submission.
	acquired, err := s.client.SetNX(ctx, lockKey(session), "1", time.Minute).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return acquired, nil
}

func (s *RedisDraftStore) ReleaseSubmitLock(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, lockKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}
