package sys

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownUnit is returned by BytesTo for a unit it does not know.
var ErrUnknownUnit = errors.New("sys: unknown unit")

// DefaultBlockSize is the binary multiple used when BytesTo is given a block size < 2.
const DefaultBlockSize = 1024

var unitPowers = map[string]int{"k": 1, "m": 2, "g": 3, "t": 4, "p": 5, "e": 6}

// BytesTo converts bytes into the unit named by its first letter (k, m, g, t, p or e),
// dividing by blockSize once per step.
func BytesTo(bytes int64, unit string, blockSize int) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return 0, errors.Wrapf(ErrUnknownUnit, "%q", unit)
	}
	power, ok := unitPowers[u[:1]]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownUnit, "%q", unit)
	}
	if blockSize < 2 {
		blockSize = DefaultBlockSize
	}
	r := float64(bytes)
	for i := 0; i < power; i++ {
		r /= float64(blockSize)
	}
	return r, nil
}
