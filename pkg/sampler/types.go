package sampler

import (
	"sort"
	"time"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
	uuid "github.com/satori/go.uuid"
)

// ActivityRecord is a shard replica annotated with the number of documents
// written to it between the two snapshots of a sample.
type ActivityRecord struct {
	cluster.ShardReplica
	WriteDelta int64 `json:"writeDelta"`
}

// Sample is the output of one sampling cycle. Gathered is false when the
// sample is a single snapshot inventory and every write delta is zero.
type Sample struct {
	ID       uuid.UUID                `json:"id"`
	Records  []ActivityRecord         `json:"records"`
	Nodes    []cluster.NodeAttributes `json:"nodes"`
	Gathered bool                     `json:"gathered"`
	Interval time.Duration            `json:"interval"`
	TakenAt  time.Time                `json:"takenAt"`
}

func newSample(records []ActivityRecord, nodes []cluster.NodeAttributes, gathered bool, interval time.Duration) *Sample {
	sortRecords(records)
	return &Sample{
		ID:       uuid.NewV4(),
		Records:  records,
		Nodes:    nodes,
		Gathered: gathered,
		Interval: interval,
		TakenAt:  time.Now().UTC(),
	}
}

func sortRecords(records []ActivityRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Node != b.Node {
			return a.Node < b.Node
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Shard < b.Shard
	})
}
