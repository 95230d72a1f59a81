package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eirsyl/shardadvisor/pkg/sampler"
)

// ErrNoSample is returned by Load when nothing has been stored yet.
var ErrNoSample = errors.New("no stored sample")

// Store persists the last sample so a later run can reuse it instead of
// waiting for a new sampling interval.
type Store interface {
	Save(ctx context.Context, sample *sampler.Sample) error
	Load(ctx context.Context) (*sampler.Sample, error)
	Close() error
}

// Open returns the store described by addr. Supported forms are
// "bolt:///path/to/file.db", a plain file path, and "redis://host:port/db".
// An empty addr returns a nil store.
func Open(addr string) (Store, error) {
	switch {
	case addr == "":
		return nil, nil
	case strings.HasPrefix(addr, "redis://"), strings.HasPrefix(addr, "rediss://"):
		store, err := NewRedisStore(addr)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.Contains(addr, "://") && !strings.HasPrefix(addr, "bolt://"):
		return nil, fmt.Errorf("Unsupported cache address: %s", addr)
	default:
		store, err := NewBoltStore(strings.TrimPrefix(addr, "bolt://"))
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
