package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/cluster"
	log "github.com/sirupsen/logrus"
)

// sleepFunc suspends the sampler between the two snapshots.
type sleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Sampler converts shard snapshots into activity records.
type Sampler struct {
	reader cluster.StateReader
	sleep  sleepFunc
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSleep replaces the wait between the two snapshots.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Sampler) {
		s.sleep = sleep
	}
}

// New returns a sampler reading from the given cluster.
func New(reader cluster.StateReader, opts ...Option) *Sampler {
	s := &Sampler{
		reader: reader,
		sleep:  contextSleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// firstPass stores the document count of every replica in the first snapshot.
// It lives for one sample only.
type firstPass map[cluster.ShardKey]int64

func newFirstPass(shards []cluster.ShardReplica) firstPass {
	fp := make(firstPass, len(shards))
	for _, shard := range shards {
		fp[shard.Key()] = shard.Docs
	}
	return fp
}

// delta returns the documents written to the replica since the first pass.
// Replicas missing from the first pass are new or relocated and report 0.
func (fp firstPass) delta(shard cluster.ShardReplica) int64 {
	docs, ok := fp[shard.Key()]
	if !ok {
		return 0
	}
	return shard.Docs - docs
}

// Sample takes two shard snapshots separated by interval and returns one
// activity record per replica in the second snapshot. Node attributes are
// read together with the second snapshot.
func (s *Sampler) Sample(ctx context.Context, interval time.Duration) (*Sample, error) {
	if interval <= 0 {
		interval = pkg.DefaultSampleInterval
	}

	log.Info("Collecting first set of shard data")
	first, err := s.reader.FetchActiveShards(ctx)
	if err != nil {
		return nil, fmt.Errorf("first shard snapshot failed: %w", err)
	}
	fp := newFirstPass(first)

	log.Infof("Waiting %v before collecting the second set of shard data", interval)
	if err := s.sleep(ctx, interval); err != nil {
		return nil, err
	}

	log.Info("Collecting second set of shard data")
	second, err := cluster.TakeSnapshot(ctx, s.reader)
	if err != nil {
		return nil, fmt.Errorf("second shard snapshot failed: %w", err)
	}

	records := make([]ActivityRecord, 0, len(second.Shards))
	for _, shard := range second.Shards {
		records = append(records, ActivityRecord{
			ShardReplica: shard,
			WriteDelta:   fp.delta(shard),
		})
	}

	return newSample(records, second.Nodes, true, interval), nil
}

// Inventory reads a single snapshot and reports every write delta as zero.
func (s *Sampler) Inventory(ctx context.Context) (*Sample, error) {
	log.Info("Skipping shard activity data collection")
	snapshot, err := cluster.TakeSnapshot(ctx, s.reader)
	if err != nil {
		return nil, fmt.Errorf("shard snapshot failed: %w", err)
	}

	records := make([]ActivityRecord, 0, len(snapshot.Shards))
	for _, shard := range snapshot.Shards {
		records = append(records, ActivityRecord{ShardReplica: shard})
	}

	return newSample(records, snapshot.Nodes, false, 0), nil
}
