package storage

import (
	"strings"

	"Stopwatch/internal/config"

	"github.com/pkg/errors"
)

// 秒表使用的两个键
const (
	KeyCentiseconds = "centiseconds"
	KeyFlags        = "flags"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// KeyValueStore 同步的字符串键值存储
type KeyValueStore interface {
	// GetString 返回键对应的值，键不存在时 ok 为 false
	GetString(key string) (value string, ok bool, err error)
	SetString(key, value string) error
	Close() error
}

// NewStore 根据配置创建存储
func NewStore(cfg config.StorageConfig) (KeyValueStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "":
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite store")
		}
		return store, nil

	case "redis":
		store, err := NewRedisStore(RedisStoreOptions{
			URL:    cfg.RedisURL,
			Prefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, errors.Wrap(err, "open redis store")
		}
		return store, nil

	case "memory", "in-memory":
		return NewMemoryStore(), nil

	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "driver %q", cfg.Driver)
	}
}
