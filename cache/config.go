package cache

import (
	"strings"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	"github.com/xhit/go-str2duration/v2"
)

// DefaultMaxSize is the per partition entry limit used when WithMaxSize is not given.
const DefaultMaxSize = 255

// NeverExpire disables partition expiry. It is the default TTL.
const NeverExpire time.Duration = 0

// DefaultShards is the number of lock stripes guarding the owner map.
const DefaultShards = 16

// config holds the resolved configuration for a Memoizer.
type config struct {
	maxSize int
	ttl     time.Duration
	shards  int
	now     func() time.Time
	logger  logger.Logger
}

// Option configures a Memoizer.
type Option func(*config)

func defaultConfig() config {
	return config{
		maxSize: DefaultMaxSize,
		ttl:     NeverExpire,
		shards:  DefaultShards,
		now:     time.Now,
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxSize < 1 {
		return cfg, configurationError("max size must be a positive integer, got %d", cfg.maxSize)
	}
	if cfg.ttl < 0 {
		return cfg, configurationError("ttl must not be negative, got %s", cfg.ttl)
	}
	if cfg.shards < 1 {
		return cfg, configurationError("shard count must be a positive integer, got %d", cfg.shards)
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return cfg, nil
}

// WithMaxSize sets the maximum number of entries kept per owner partition.
// Inserting past the limit evicts the oldest inserted entry. Defaults to DefaultMaxSize.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithTTL sets the maximum age of a partition. Once a partition is older than d it is
// emptied before the next lookup. Use NeverExpire to keep partitions forever.
func WithTTL(d time.Duration) Option {
	return func(c *config) { c.ttl = d }
}

// WithClock replaces the wall clock used for partition ages.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithLogger enables trace logging of hits and misses and debug logging of evictions and resets.
func WithLogger(log logger.Logger) Option {
	return func(c *config) { c.logger = log }
}

// WithShards sets the number of lock stripes guarding the owner to partition map.
func WithShards(n int) Option {
	return func(c *config) { c.shards = n }
}

// ParseTTL parses a TTL expression. An empty string or "never" returns NeverExpire,
// anything else is parsed as a duration which may use day and week units (e.g. "1d12h").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "never") {
		return NeverExpire, nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, configurationError("invalid ttl %q: %s", s, err)
	}
	if d < 0 {
		return 0, configurationError("ttl must not be negative, got %q", s)
	}
	return d, nil
}

// FormatTTL is the inverse of ParseTTL.
func FormatTTL(d time.Duration) string {
	if d == NeverExpire {
		return "never"
	}
	return str2duration.String(d)
}
