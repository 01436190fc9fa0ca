package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// verifyAndConsumeLua compares and deletes a code in one round trip.
// KEYS[1] = record key
// ARGV[1] = submitted code
//
// Returns 1 when the code matched and was deleted, 0 otherwise.
var verifyAndConsumeLua = redis.NewScript(`
local code = redis.call('GET', KEYS[1])
if not code then
  return 0
end
if code ~= ARGV[1] then
  return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// Redis is a Store backed by go-redis.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps an existing redis client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Put stores code with `SET key code EX ttl`.
func (r *Redis) Put(ctx context.Context, channel, identity, code string, ttl time.Duration) error {
	key := Key(channel, identity)

	if ttl <= 0 {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	if err := r.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Get returns the live code for the key.
func (r *Redis) Get(ctx context.Context, channel, identity string) (string, error) {
	code, err := r.client.Get(ctx, Key(channel, identity)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return code, nil
}

// Delete removes the record for the key.
func (r *Redis) Delete(ctx context.Context, channel, identity string) error {
	if err := r.client.Del(ctx, Key(channel, identity)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// VerifyAndConsume runs the compare-and-delete script.
func (r *Redis) VerifyAndConsume(ctx context.Context, channel, identity, code string) (bool, error) {
	n, err := verifyAndConsumeLua.Run(ctx, r.client, []string{Key(channel, identity)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return n == 1, nil
}
