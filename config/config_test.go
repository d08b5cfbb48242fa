package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/KhanMaytok/reddit-karma-farming-bot/schedule"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetSubreddits(t *testing.T) {
	t.Setenv(SubredditListEnv, "")
	os.Unsetenv(SubredditListEnv)
}

func TestDefaults(t *testing.T) {
	unsetSubreddits(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 128, cfg.MaxCacheSize)
	assert.Equal(t, cache.NeverExpire, cfg.CacheTTL)
	assert.Equal(t, schedule.Clock(10, 30), cfg.AwakeTime)
	assert.Equal(t, schedule.Clock(21, 20), cfg.SleepTime)
	assert.False(t, cfg.UseSleepSchedule)
	assert.Equal(t, 0.02, cfg.Probability(ActionReply))
	assert.Equal(t, 0.005, cfg.Probability("submission"))
	assert.Equal(t, 0.002, cfg.Probability(ActionShadowCheck))
	assert.Equal(t, 0.0, cfg.Probability("UNKNOWN"))
	assert.Empty(t, cfg.Subreddits)
}

func TestLoadFile(t *testing.T) {
	unsetSubreddits(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_cache_size: 32
cache_ttl: 1h30m
use_sleep_schedule: true
awake_time: "08:00"
sleep_time: "23:15"
probabilities:
  reply: 0.5
subreddits: [golang, programming]
log_learned_comments: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxCacheSize)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.UseSleepSchedule)
	assert.Equal(t, schedule.Clock(8, 0), cfg.AwakeTime)
	assert.Equal(t, schedule.Clock(23, 15), cfg.SleepTime)
	assert.Equal(t, 0.5, cfg.Probability(ActionReply))
	assert.Equal(t, 0.02, cfg.Probability(ActionLearn))
	assert.Equal(t, []string{"golang", "programming"}, cfg.Subreddits)
	assert.True(t, cfg.LogLearnedComments)
	assert.Equal(t, "disallowed_words.txt", cfg.DisallowedWordsFile)
	assert.Len(t, cfg.CacheOptions(), 2)
}

func TestSubredditListEnv(t *testing.T) {
	t.Setenv(SubredditListEnv, " golang, ,rust ")
	cfg, err := Parse([]byte("subreddits: [python]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "rust"}, cfg.Subreddits)
}

func TestInvalid(t *testing.T) {
	unsetSubreddits(t)
	tests := []struct {
		name string
		doc  string
	}{
		{"zero cache size", "max_cache_size: 0\n"},
		{"negative ttl", "cache_ttl: -5m\n"},
		{"bad ttl", "cache_ttl: soon\n"},
		{"bad time", "awake_time: noon\n"},
		{"probability above one", "probabilities:\n  delete: 1.5\n"},
		{"unknown field", "max_cache: 10\n"},
		{"brain range", "brain_min_size: 10\nbrain_max_size: 5\n"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.doc))
		assert.True(t, errors.Is(err, ErrInvalid), tt.name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
