package pkg

import "time"

const (
	// DefaultClusterPort is the HTTP port of the cluster status API.
	DefaultClusterPort = 9200

	// DefaultRequestTimeout bounds every read against the cluster status API.
	DefaultRequestTimeout = 90 * time.Second

	// DefaultSampleInterval is the wait between the two shard snapshots.
	// The write delta of a shard is reported as documents per interval.
	DefaultSampleInterval = 60 * time.Second

	// DefaultMoveLimit is the number of relocations suggested per run.
	DefaultMoveLimit = 5

	// DefaultPerNodeLimit is the number of replicas of one index a node may
	// carry before it is reported as duplicated placement.
	DefaultPerNodeLimit = 1

	// DefaultDebugAddr is the listen address of the serve command debug server.
	DefaultDebugAddr = ":9300"

	// DefaultServeEvery is the pause between two advisor runs in serve mode.
	DefaultServeEvery = 5 * time.Minute

	// GiB is used when rendering byte totals.
	GiB = 1073741824.0
)
