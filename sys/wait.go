package sys

import (
	"regexp"
	"strconv"
)

// DefaultWaitSeconds is returned by SecondsToWait when the message has no minute count.
const DefaultWaitSeconds = 60

var minutesPattern = regexp.MustCompile(`(?i)\b(\d+)\s*minutes?\b`)

// SecondsToWait reads a rate limit message such as "try again in 3 minutes" and returns how
// long to back off. A message saying 3 minutes may mean 3 minutes and some seconds, so one
// extra minute is added.
func SecondsToWait(msg string) int {
	m := minutesPattern.FindStringSubmatch(msg)
	if m == nil {
		return DefaultWaitSeconds
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultWaitSeconds
	}
	return (minutes + 1) * 60
}
