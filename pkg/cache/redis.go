package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	redisLatestKey = "shardadvisor:sample:latest"
	redisSampleTTL = 24 * time.Hour
)

// RedisStore keeps samples in redis so several operators can share them.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore connects to the redis server described by url.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("Invalid redis address: %v", err)
	}

	log.Debugf("Using redis sample cache at %s", opts.Addr)
	return &RedisStore{redis: redis.NewClient(opts)}, nil
}

// Save replaces the stored sample. Only the latest sample is kept.
func (s *RedisStore) Save(ctx context.Context, sample *sampler.Sample) error {
	buf, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, redisLatestKey, buf, redisSampleTTL).Err()
}

// Load returns the latest stored sample.
func (s *RedisStore) Load(ctx context.Context) (*sampler.Sample, error) {
	buf, err := s.redis.Get(ctx, redisLatestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSample
	}
	if err != nil {
		return nil, err
	}

	var sample sampler.Sample
	if err := json.Unmarshal(buf, &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

// Close closes the redis connection pool.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}
