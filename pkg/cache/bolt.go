package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/eirsyl/shardadvisor/pkg/utils"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var (
	samplesBucket = []byte("samples")
	latestKey     = []byte("latest")
)

// BoltStore keeps samples in a local bolt database file.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("The cache path cannot be empty")
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(samplesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debugf("Opened sample cache %s", path)
	return &BoltStore{db: db}, nil
}

// DB exposes the database for backups.
func (s *BoltStore) DB() *bolt.DB {
	return s.db
}

// Save replaces the stored sample. Only the latest sample is kept.
func (s *BoltStore) Save(ctx context.Context, sample *sampler.Sample) error {
	buf, err := json.Marshal(sample)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(samplesBucket).Put(latestKey, buf)
	})
	if err != nil {
		return err
	}

	stats := s.db.Stats()
	utils.ReportBoltStats(&stats)
	return nil
}

// Load returns the latest stored sample.
func (s *BoltStore) Load(ctx context.Context) (*sampler.Sample, error) {
	var sample *sampler.Sample

	err := s.db.View(func(tx *bolt.Tx) error {
		buf := tx.Bucket(samplesBucket).Get(latestKey)
		if buf == nil {
			return ErrNoSample
		}
		sample = &sampler.Sample{}
		return json.Unmarshal(buf, sample)
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
