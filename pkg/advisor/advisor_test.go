package advisor

import (
	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/eirsyl/shardadvisor/pkg/usage"
)

func record(node, index string, shard int, delta int64) sampler.ActivityRecord {
	return sampler.ActivityRecord{
		ShardReplica: cluster.ShardReplica{Node: cluster.NodeID(node), Index: index, Shard: shard, Docs: 100, Bytes: 1024},
		WriteDelta:   delta,
	}
}

func dataNodes(loads map[string]float64) []cluster.NodeAttributes {
	nodes := []cluster.NodeAttributes{}
	for name, load := range loads {
		nodes = append(nodes, cluster.NodeAttributes{Node: cluster.NodeID(name), Load: load, HoldsData: true})
	}
	return nodes
}

func utilization(loads map[string]float64, records ...sampler.ActivityRecord) *usage.Utilization {
	return usage.Aggregate(records, dataNodes(loads))
}

func options(perNode int, exclude ...string) Options {
	return NewOptions(exclude, perNode)
}
