package cache

import "github.com/cockroachdb/errors"

// ErrConfiguration marks every error returned for an invalid memoizer configuration.
// Match it with errors.Is.
var ErrConfiguration = errors.New("cache: invalid configuration")

func configurationError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("cache: "+format, args...), ErrConfiguration)
}
