// Package config loads the bot configuration file.
package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/KhanMaytok/reddit-karma-farming-bot/schedule"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// SubredditListEnv overrides Config.Subreddits with a comma separated list.
const SubredditListEnv = "SUBREDDIT_LIST"

// ErrInvalid marks every validation error returned by Load and Parse.
var ErrInvalid = errors.New("config: invalid")

// Actions the bot rolls a probability for.
const (
	ActionReply       = "REPLY"
	ActionSubmission  = "SUBMISSION"
	ActionShadowCheck = "SHADOWCHECK"
	ActionLearn       = "LEARN"
	ActionDelete      = "DELETE"
)

// Config is the bot configuration.
type Config struct {
	MaxCacheSize        int                `yaml:"max_cache_size"`
	CacheTTL            time.Duration      `yaml:"-"`
	UseSleepSchedule    bool               `yaml:"use_sleep_schedule"`
	AwakeTime           schedule.TimeOfDay `yaml:"awake_time"`
	SleepTime           schedule.TimeOfDay `yaml:"sleep_time"`
	Probabilities       map[string]float64 `yaml:"probabilities"`
	DisallowedWordsFile string             `yaml:"disallowed_words_file"`
	Subreddits          []string           `yaml:"subreddits"`
	LogLearnedComments  bool               `yaml:"log_learned_comments"`
	BrainMinSize        int64              `yaml:"brain_min_size"`
	BrainMaxSize        int64              `yaml:"brain_max_size"`
}

// Default returns the configuration used for anything the file leaves out.
func Default() Config {
	return Config{
		MaxCacheSize: 128,
		CacheTTL:     cache.NeverExpire,
		AwakeTime:    schedule.DefaultAwake,
		SleepTime:    schedule.DefaultSleep,
		Probabilities: map[string]float64{
			ActionReply:       0.02,
			ActionSubmission:  0.005,
			ActionShadowCheck: 0.002,
			ActionLearn:       0.02,
			ActionDelete:      0.02,
		},
		DisallowedWordsFile: "disallowed_words.txt",
		BrainMinSize:        2097152,
		BrainMaxSize:        209715200,
	}
}

type file struct {
	Config   `yaml:",inline"`
	CacheTTL string `yaml:"cache_ttl"`
}

// Load reads the YAML file at path over Default. An empty path gives Default. The
// SUBREDDIT_LIST environment variable wins over the file.
func Load(path string) (Config, error) {
	var buf []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", path)
		}
		buf = b
	}
	cfg, err := Parse(buf)
	if err != nil && path != "" {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, err
}

// Parse is Load for an in-memory document.
func Parse(buf []byte) (Config, error) {
	f := file{Config: Default()}
	f.CacheTTL = cache.FormatTTL(f.Config.CacheTTL)
	defaults := f.Config.Probabilities
	f.Config.Probabilities = nil
	if len(bytes.TrimSpace(buf)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return Config{}, errors.Mark(errors.Wrap(err, "config: parse"), ErrInvalid)
		}
	}
	cfg := f.Config
	ttl, err := cache.ParseTTL(f.CacheTTL)
	if err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "config: cache_ttl"), ErrInvalid)
	}
	cfg.CacheTTL = ttl
	merged := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range cfg.Probabilities {
		merged[strings.ToUpper(k)] = v
	}
	cfg.Probabilities = merged
	if v := strings.TrimSpace(os.Getenv(SubredditListEnv)); v != "" {
		cfg.Subreddits = splitList(v)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate checks the values a file can get wrong.
func (c Config) Validate() error {
	if c.MaxCacheSize < 1 {
		return errors.Mark(errors.Newf("config: max_cache_size must be at least 1, got %d", c.MaxCacheSize), ErrInvalid)
	}
	for name, p := range c.Probabilities {
		if p < 0 || p > 1 {
			return errors.Mark(errors.Newf("config: probability %s must be between 0 and 1, got %v", name, p), ErrInvalid)
		}
	}
	if c.BrainMinSize < 0 || c.BrainMaxSize < c.BrainMinSize {
		return errors.Mark(errors.Newf("config: brain size range %d..%d is invalid", c.BrainMinSize, c.BrainMaxSize), ErrInvalid)
	}
	return nil
}

// Probability returns the probability configured for action, 0 if there is none.
func (c Config) Probability(action string) float64 {
	return c.Probabilities[strings.ToUpper(action)]
}

// CacheOptions returns the memoizer options described by the configuration.
func (c Config) CacheOptions() []cache.Option {
	return []cache.Option{cache.WithMaxSize(c.MaxCacheSize), cache.WithTTL(c.CacheTTL)}
}
