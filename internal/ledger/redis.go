package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis is a Ledger backed by a shared Redis instance. It exists for
// deployments where a fixed pool of worker processes must agree on a single
// ledger: the in-memory mutex of Memory cannot span processes, so the
// critical section moves into Redis itself.
//
// Records are kept in a list (arrival order) and the running total in a
// counter key. The append script pushes and increments in one atomic step.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// appendScript performs [push record; increment total] atomically and
// returns the new total, mirroring the Memory critical section.
var appendScript = redis.NewScript(`
redis.call("RPUSH", KEYS[1], ARGV[1])
return redis.call("INCRBY", KEYS[2], ARGV[2])
`)

// RedisOption configures a Redis ledger.
type RedisOption func(*Redis)

// WithPrefix overrides the key prefix (default "tally:ledger").
func WithPrefix(prefix string) RedisOption {
	return func(l *Redis) { l.prefix = strings.Trim(prefix, ":") }
}

// NewRedis returns a Ledger stored under prefix keys in rdb.
func NewRedis(rdb *redis.Client, opts ...RedisOption) *Redis {
	l := &Redis{rdb: rdb, prefix: "tally:ledger"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Redis) recordsKey() string { return l.prefix + ":records" }
func (l *Redis) totalKey() string   { return l.prefix + ":total" }

// Append implements Ledger.
func (l *Redis) Append(ctx context.Context, rec Record) (int64, error) {
	if rec.Quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encode record: %w", err)
	}
	total, err := appendScript.Run(ctx, l.rdb, []string{l.recordsKey(), l.totalKey()}, b, rec.Quantity).Int64()
	if err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}
	return total, nil
}

// Total implements Ledger. A missing counter key reads as zero.
func (l *Redis) Total(ctx context.Context) (int64, error) {
	n, err := l.rdb.Get(ctx, l.totalKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read total: %w", err)
	}
	return n, nil
}

// Snapshot implements Ledger. LRANGE is atomic in Redis, so the copy
// corresponds to a single point in time.
func (l *Redis) Snapshot(ctx context.Context) ([]Record, error) {
	raw, err := l.rdb.LRange(ctx, l.recordsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	out := make([]Record, 0, len(raw))
	for _, s := range raw {
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Ping reports whether the backing Redis is reachable.
func (l *Redis) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}
