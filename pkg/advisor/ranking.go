package advisor

import (
	"sort"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/eirsyl/shardadvisor/pkg/usage"
)

// rankByLoad orders the nodes by load average. Ties are broken by node id so
// the ranking is stable across runs.
func rankByLoad(u *usage.Utilization, descending bool) []*usage.NodeUsage {
	nodes := make([]*usage.NodeUsage, 0, len(u.Nodes))
	for _, id := range u.SortedNodes() {
		nodes = append(nodes, u.Nodes[id])
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Load != b.Load {
			if descending {
				return a.Load > b.Load
			}
			return a.Load < b.Load
		}
		return a.Node < b.Node
	})
	return nodes
}

// hottestFirst returns a copy of the shards ordered by write delta, highest
// first.
func hottestFirst(shards []sampler.ActivityRecord) []sampler.ActivityRecord {
	sorted := make([]sampler.ActivityRecord, len(shards))
	copy(sorted, shards)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.WriteDelta != b.WriteDelta {
			return a.WriteDelta > b.WriteDelta
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Shard < b.Shard
	})
	return sorted
}

// byIndex returns a copy of the shards grouped by index name.
func byIndex(shards []sampler.ActivityRecord) []sampler.ActivityRecord {
	sorted := make([]sampler.ActivityRecord, len(shards))
	copy(sorted, shards)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Shard < b.Shard
	})
	return sorted
}

// qualifies checks if node can receive a replica of index moved away from
// source.
func qualifies(node, source cluster.NodeID, index string, u *usage.Utilization, opts Options) bool {
	if node == source || opts.Exclude[node] {
		return false
	}
	return u.IndexCount(node, index) < opts.PerNodeLimit
}

// findDestination returns the first candidate that qualifies.
func findDestination(shard sampler.ActivityRecord, candidates []*usage.NodeUsage, u *usage.Utilization, opts Options) (cluster.NodeID, bool) {
	for _, candidate := range candidates {
		if qualifies(candidate.Node, shard.Node, shard.Index, u, opts) {
			return candidate.Node, true
		}
	}
	return "", false
}
