package advisor

import (
	"github.com/eirsyl/shardadvisor/pkg/usage"
	log "github.com/sirupsen/logrus"
)

// SuggestByDedup reports nodes that carry more than limit replicas of the same
// index. It only detects duplicated placement and never proposes moves; that
// is usually better fixed with allocation settings than with manual moves.
func SuggestByDedup(u *usage.Utilization, limit int) Result {
	res := newResult(MethodDedup)
	if limit <= 0 {
		return res
	}

	flush := func(node *usage.NodeUsage, index string, count int) {
		if index == "" || count <= limit {
			return
		}
		log.WithFields(log.Fields{
			"node":  node.Node,
			"index": index,
			"count": count,
		}).Warnf("[%s] %d shards of index %s", node.Node, count, index)
		res.Duplicates = append(res.Duplicates, Duplicate{Node: node.Node, Index: index, Count: count})
	}

	for _, node := range rankByLoad(u, true) {
		current := ""
		count := 0
		for _, shard := range byIndex(node.Shards) {
			if shard.Index == current {
				count++
				continue
			}
			flush(node, current, count)
			current = shard.Index
			count = 1
		}
		flush(node, current, count)
	}

	return res
}
