package flags

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Environment holds the defaults every flag falls back to when it is not
// given on the command line.
type Environment struct {
	DataSource      string        `env:"DOCSITE_DATA_SOURCE" envDefault:"."`
	FetchTimeout    time.Duration `env:"DOCSITE_FETCH_TIMEOUT" envDefault:"0s"`
	CacheExpiry     time.Duration `env:"DOCSITE_CACHE_EXPIRY" envDefault:"1h"`
	RefreshInterval time.Duration `env:"DOCSITE_REFRESH_INTERVAL" envDefault:"0s"`
	Watch           bool          `env:"DOCSITE_WATCH" envDefault:"false"`
	RedisURL        string        `env:"REDIS_URL"`
	ListenAddr      string        `env:"DOCSITE_LISTEN" envDefault:":8080"`
	MetricsAddr     string        `env:"DOCSITE_LISTEN_METRICS" envDefault:":2112"`
}

// LoadEnvironment parses the process environment. On error the returned
// value still carries the built in defaults.
func LoadEnvironment() (Environment, error) {
	e, err := env.ParseAs[Environment]()
	if err == nil {
		return e, nil
	}

	fallback := Environment{}
	_ = env.ParseWithOptions(&fallback, env.Options{Environment: map[string]string{}})
	return fallback, errors.Wrap(err, "invalid environment")
}
