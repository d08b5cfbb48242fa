package sys

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/mem"
)

// Memory is the host memory, in bytes.
type Memory struct {
	Total     uint64
	Available uint64
}

// HostMemory reads the host memory counters.
func HostMemory(ctx context.Context) (Memory, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, errors.Wrap(err, "sys: read memory")
	}
	return Memory{Total: v.Total, Available: v.Available}, nil
}
