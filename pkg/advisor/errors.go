package advisor

import (
	"fmt"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
)

// NoDestinationFoundError is recorded when no node qualifies as destination
// for a candidate shard. The shard is skipped.
type NoDestinationFoundError struct {
	Index    string         `json:"index"`
	Shard    int            `json:"shard"`
	FromNode cluster.NodeID `json:"fromNode"`
}

func (e NoDestinationFoundError) Error() string {
	return fmt.Sprintf("Could not find node to move %s[%d] from %s", e.Index, e.Shard, e.FromNode)
}
