package usage

import (
	"sort"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	log "github.com/sirupsen/logrus"
)

// NodeUsage is the utilization of one data node.
type NodeUsage struct {
	Node       cluster.NodeID           `json:"node"`
	Load       float64                  `json:"load"`
	Zone       string                   `json:"zone"`
	TotalDocs  int64                    `json:"totalDocs"`
	TotalBytes int64                    `json:"totalBytes"`
	ShardCount int                      `json:"shardCount"`
	WriteDelta int64                    `json:"writeDelta"`
	Shards     []sampler.ActivityRecord `json:"shards"`
}

// Totals contains the cluster wide sums over all aggregated records.
type Totals struct {
	Docs   int64 `json:"docs"`
	Bytes  int64 `json:"bytes"`
	Shards int   `json:"shards"`
}

// Utilization maps every data node to its usage.
type Utilization struct {
	Nodes   map[cluster.NodeID]*NodeUsage `json:"nodes"`
	Totals  Totals                        `json:"totals"`
	Dropped int                           `json:"dropped"`
}

// Percent contains the share of the cluster totals held by one node.
type Percent struct {
	Docs   float64
	Shards float64
	Disk   float64
}

// Aggregate folds activity records onto the data nodes. Every data node gets
// an entry, also when it hosts no shards. Records that reference a node that
// is unknown or does not hold data are dropped.
func Aggregate(records []sampler.ActivityRecord, nodes []cluster.NodeAttributes) *Utilization {
	u := &Utilization{Nodes: map[cluster.NodeID]*NodeUsage{}}

	for _, node := range nodes {
		if !node.HoldsData {
			log.Debugf("Ignoring node %s with roles %q", node.Node, node.Roles)
			continue
		}
		u.Nodes[node.Node] = &NodeUsage{
			Node:   node.Node,
			Load:   node.Load,
			Zone:   node.Zone,
			Shards: []sampler.ActivityRecord{},
		}
	}

	for _, record := range records {
		nu, ok := u.Nodes[record.Node]
		if !ok {
			log.WithFields(log.Fields{
				"node":  record.Node,
				"index": record.Index,
				"shard": record.Shard,
			}).Warn("Dropping shard on unknown data node")
			u.Dropped++
			continue
		}

		nu.TotalDocs += record.Docs
		nu.TotalBytes += record.Bytes
		nu.ShardCount++
		nu.WriteDelta += record.WriteDelta
		nu.Shards = append(nu.Shards, record)

		u.Totals.Docs += record.Docs
		u.Totals.Bytes += record.Bytes
		u.Totals.Shards++
	}

	return u
}

// SortedNodes returns the node ids ordered by name.
func (u *Utilization) SortedNodes() []cluster.NodeID {
	ids := make([]cluster.NodeID, 0, len(u.Nodes))
	for id := range u.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

// Percent returns the share of documents, shards and disk held by the node.
func (u *Utilization) Percent(node cluster.NodeID) Percent {
	nu, ok := u.Nodes[node]
	if !ok {
		return Percent{}
	}
	return Percent{
		Docs:   percent(float64(nu.TotalDocs), float64(u.Totals.Docs)),
		Shards: percent(float64(nu.ShardCount), float64(u.Totals.Shards)),
		Disk:   percent(float64(nu.TotalBytes), float64(u.Totals.Bytes)),
	}
}

// IndexCount returns the number of replicas of index hosted by node.
func (u *Utilization) IndexCount(node cluster.NodeID, index string) int {
	nu, ok := u.Nodes[node]
	if !ok {
		return 0
	}
	count := 0
	for _, shard := range nu.Shards {
		if shard.Index == index {
			count++
		}
	}
	return count
}
