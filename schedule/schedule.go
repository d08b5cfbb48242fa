// Package schedule decides when the bot is awake.
package schedule

import (
	"fmt"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Day is the age at which IsPastOneDay turns true.
const Day = 24 * time.Hour

// TimeOfDay is a wall clock time as seconds since midnight.
type TimeOfDay int

var (
	// DefaultAwake is when the bot wakes up, in UTC.
	DefaultAwake = Clock(10, 30)
	// DefaultSleep is when the bot goes to sleep, in UTC.
	DefaultSleep = Clock(21, 20)
)

// Clock returns the TimeOfDay hour:minute.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// At returns the UTC time of day of t.
func At(t time.Time) TimeOfDay {
	t = t.UTC()
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, errors.Newf("schedule: invalid time of day %q", s)
}

func (t TimeOfDay) String() string {
	s := int(t)
	if s%60 != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", s/3600, s/60%60)
}

// UnmarshalYAML reads a "15:04" scalar.
func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*t = v
	return nil
}

func (t TimeOfDay) MarshalYAML() (any, error) {
	return t.String(), nil
}

// IsTimeBetween reports whether check is within [begin, end]. A window whose begin is not before
// its end wraps around midnight.
func IsTimeBetween(begin, end, check TimeOfDay) bool {
	if begin < end {
		return check >= begin && check <= end
	}
	return check >= begin || check <= end
}

// ShouldSleep reports whether now falls outside the awake window.
func ShouldSleep(log logger.Logger, awake, sleep TimeOfDay, now time.Time) bool {
	log.Info("awake time: %s, sleep time: %s, current time: %s", awake, sleep, At(now))
	if IsTimeBetween(awake, sleep, At(now)) {
		return false
	}
	log.Info("it's sleepy time")
	return true
}

// IsPastOneDay reports whether at least a day has passed since epoch, in unix seconds.
func IsPastOneDay(epoch int64, now time.Time) bool {
	return now.Unix()-epoch >= int64(Day/time.Second)
}
