package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// RedisClient RedisStore 用到的客户端方法，便于测试替换
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

type RedisStoreOptions struct {
	URL    string
	Prefix string
}

type RedisStore struct {
	client RedisClient
	prefix string
}

var _ KeyValueStore = (*RedisStore)(nil)

func NewRedisStore(options RedisStoreOptions) (*RedisStore, error) {
	opts, err := redis.ParseURL(options.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		prefix: options.Prefix,
	}, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) GetString(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %s", key)
	}
	return value, true, nil
}

func (s *RedisStore) SetString(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return errors.Wrapf(s.client.Set(ctx, s.key(key), value, 0).Err(), "set %s", key)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
