package baseline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stadump/pkg/errors"
)

// DefaultRedisPrefix is the key prefix used when none is configured.
const DefaultRedisPrefix = "stadump:baseline:"

// RedisStore keeps baselines in Redis. Each record is a JSON string under
// prefix+name, and a set under prefix+"index" tracks the names for List.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts *redis.Options, prefix string) (*RedisStore, error) {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect redis %s", opts.Addr)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Get retrieves a baseline.
func (s *RedisStore) Get(ctx context.Context, name string) (*Record, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "corrupt baseline %q", name)
	}
	return &rec, nil
}

// Put stores a baseline and indexes its name in one transaction.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateBaselineName(rec.Name); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(rec.Name), data, 0)
		pipe.SAdd(ctx, s.indexKey(), rec.Name)
		return nil
	})
	return err
}

// Delete removes a baseline and its index entry.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		return nil
	})
	return err
}

// List returns the indexed names in ascending order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string { return s.prefix + "rec:" + name }
func (s *RedisStore) indexKey() string       { return s.prefix + "index" }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
