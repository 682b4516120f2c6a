package flags

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/composio/docsite/pkg/apis/cache"
	"github.com/composio/docsite/pkg/cache/compressed"
	"github.com/composio/docsite/pkg/cache/redis"
)

// CacheFlags holds caching configuration for fetched documents.
type CacheFlags struct {
	RedisURL string
}

func NewCacheFlags() *CacheFlags {
	e, _ := LoadEnvironment()
	return &CacheFlags{RedisURL: e.RedisURL}
}

func (f *CacheFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.RedisURL,
		"redis-url",
		f.RedisURL,
		"Redis URL for caching fetched documents")
}

// GetCacheClient returns nil when no cache is configured.
func (f *CacheFlags) GetCacheClient() (cache.Cache, error) {
	if f.RedisURL == "" {
		return nil, nil
	}

	c, err := redis.NewRedisCache(f.RedisURL)
	if err != nil {
		return nil, errors.WithMessage(err, "connecting to redis")
	}
	if err := c.Ping(); err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "redis is not reachable")
	}
	return compressed.NewCompressedCache(c), nil
}
