package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL for a key without expiration
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrNoPool is returned when no pool is configured
	ErrNoPool = errors.New("redis: no pool")
)

// Forever keeps a key without expiration
const Forever = time.Duration(-1)

// Service is the subset of redis commands the service relies on
type Service interface {
	Ping(context ctx.Ctx) error
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(context ctx.Ctx, key string) (int, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	// Publish posts msg on channel and returns the number of receivers
	Publish(context ctx.Ctx, channel string, msg []byte) (int, error)
}
